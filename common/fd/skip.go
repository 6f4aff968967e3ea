package fd

import (
	"io"
	"os"

	E "github.com/sagernet/fdstream/common/exceptions"
)

// maxSpliceSize caps the length handed to a single splice call.
const maxSpliceSize = 1 << 20

// Skip discards the next n bytes of h. Regular files are repositioned;
// pipes are spliced straight into the pool's sink; anything else is
// spliced through the pool's kernel pipe. Skip either discards all n bytes
// or fails. A nil pool gets a temporary one for the duration of the call.
func Skip(h *Handle, pool *Pool, n int64) error {
	if n == 0 {
		return nil
	}
	if n < 0 {
		return &SeekError{Fd: h.fd, Err: E.New("negative skip of ", n, " bytes")}
	}
	if h.kind == KindRegular {
		_, err := h.Seek(n, io.SeekCurrent)
		return err
	}
	if h.closed {
		return &TransferError{Hop: "source", Requested: n, Remaining: n, Err: os.ErrClosed}
	}
	if pool == nil {
		pool = NewPool()
		defer pool.Close()
	}
	logger.Trace("skip ", n, " bytes of ", h.kind, " fd ", h.fd)
	if h.kind == KindFifo {
		return splicePipeToSink(h, pool, n)
	}
	return spliceThroughPipe(h, pool, n)
}

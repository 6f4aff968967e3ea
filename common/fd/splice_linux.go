package fd

import (
	"io"

	"github.com/sagernet/fdstream/common"

	"golang.org/x/sys/unix"
)

func splice(source int, destination int, n int64) (int64, error) {
	for {
		moved, err := unix.Splice(source, nil, destination, nil, int(common.Min(n, maxSpliceSize)), unix.SPLICE_F_MOVE)
		if err != unix.EINTR {
			return moved, err
		}
	}
}

// splicePipeToSink moves bytes from a pipe into the sink without a hop.
func splicePipeToSink(h *Handle, pool *Pool, n int64) error {
	sink, err := pool.Sink()
	if err != nil {
		return err
	}
	requested := n
	for n > 0 {
		moved, err := splice(h.fd, sink, n)
		if err != nil {
			return &TransferError{Hop: "fifo to sink", Requested: requested, Remaining: n, Err: err}
		}
		if moved == 0 {
			return &PrematureEndError{Requested: requested, Remaining: n}
		}
		n -= moved
	}
	return nil
}

// spliceThroughPipe bounces bytes through the kernel pipe, since splice
// needs a pipe on one side.
func spliceThroughPipe(h *Handle, pool *Pool, n int64) error {
	sink, err := pool.Sink()
	if err != nil {
		return err
	}
	pipeR, pipeW, err := pool.Pipe()
	if err != nil {
		return err
	}
	requested := n
	for n > 0 {
		moved, err := splice(h.fd, pipeW, n)
		if err != nil {
			return &TransferError{Hop: "source to pipe", Requested: requested, Remaining: n, Err: err}
		}
		if moved == 0 {
			return &PrematureEndError{Requested: requested, Remaining: n}
		}
		for pending := moved; pending > 0; {
			drained, err := splice(pipeR, sink, pending)
			if err == nil && drained == 0 {
				err = io.ErrUnexpectedEOF
			}
			if err != nil {
				// the moved bytes left the source; dropping the pipe discards them
				pool.resetPipe()
				return &TransferError{Hop: "pipe to sink", Requested: requested, Remaining: n - moved, Err: err}
			}
			pending -= drained
		}
		n -= moved
	}
	return nil
}

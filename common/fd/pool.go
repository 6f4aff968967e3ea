package fd

import (
	"io"
	"os"

	"github.com/sagernet/fdstream/common"
	E "github.com/sagernet/fdstream/common/exceptions"
	"github.com/sagernet/fdstream/common/log"

	"golang.org/x/sys/unix"
)

var logger = log.NewLogger("fd")

// Pool holds the discard sink and kernel pipe used by non-regular skips.
// Both are created on first use and reused until Close. A Pool belongs to
// one execution context and must not be shared between goroutines without
// external synchronization.
type Pool struct {
	sinkPath string
	sink     *Handle
	pipeR    *Handle
	pipeW    *Handle
	closed   bool
}

func NewPool() *Pool {
	return NewPoolWithSink(os.DevNull)
}

func NewPoolWithSink(path string) *Pool {
	return &Pool{sinkPath: path}
}

// Sink returns the write-only discard descriptor.
func (p *Pool) Sink() (int, error) {
	if p.closed {
		return -1, &OpenError{Subject: p.sinkPath, Err: os.ErrClosed}
	}
	if p.sink == nil {
		sink, err := FromPath(p.sinkPath, unix.O_WRONLY)
		if err != nil {
			return -1, err
		}
		logger.Debug("opened discard sink ", p.sinkPath, " as fd ", sink.fd)
		p.sink = sink
	}
	return p.sink.fd, nil
}

// Pipe returns the read and write ends of the intermediate kernel pipe.
func (p *Pool) Pipe() (r int, w int, err error) {
	if p.closed {
		return -1, -1, &OpenError{Subject: "pipe", Err: os.ErrClosed}
	}
	if p.pipeR == nil {
		var fds [2]int
		err = unix.Pipe2(fds[:], unix.O_CLOEXEC)
		if err != nil {
			return -1, -1, &OpenError{Subject: "pipe", Err: err}
		}
		logger.Debug("created kernel pipe [", fds[0], " ", fds[1], "]")
		p.pipeR = &Handle{fd: fds[0], kind: KindFifo, owned: true}
		p.pipeW = &Handle{fd: fds[1], kind: KindFifo, owned: true}
	}
	return p.pipeR.fd, p.pipeW.fd, nil
}

// resetPipe drops a pipe that may still hold undrained bytes.
func (p *Pool) resetPipe() {
	if p.pipeR == nil {
		return
	}
	err := E.Errors(p.pipeR.Close(), p.pipeW.Close())
	if err != nil {
		logger.Debug("close kernel pipe: ", err)
	}
	p.pipeR, p.pipeW = nil, nil
}

// Close releases the sink and both pipe ends together.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	var closers []io.Closer
	for _, handle := range []*Handle{p.sink, p.pipeR, p.pipeW} {
		if handle != nil {
			closers = append(closers, handle)
		}
	}
	p.sink, p.pipeR, p.pipeW = nil, nil, nil
	return E.Errors(common.Close(closers...)...)
}

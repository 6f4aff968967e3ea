// Package fdstream reads OS descriptors through a buffer and skips forward
// without copying the skipped bytes into user memory: regular files are
// repositioned and pipes or other streams are spliced into the null device.
package fdstream

import (
	"io"
	"os"

	"github.com/sagernet/fdstream/common/bufio"
	E "github.com/sagernet/fdstream/common/exceptions"
	"github.com/sagernet/fdstream/common/fd"

	"golang.org/x/sys/unix"
)

type (
	Kind              = fd.Kind
	OpenError         = fd.OpenError
	ReadError         = fd.ReadError
	SeekError         = fd.SeekError
	TransferError     = fd.TransferError
	PrematureEndError = fd.PrematureEndError
)

const (
	KindRegular = fd.KindRegular
	KindFifo    = fd.KindFifo
	KindOther   = fd.KindOther
)

var (
	_ io.ReadSeekCloser = (*Stream)(nil)
	_ io.ByteReader     = (*Stream)(nil)
	_ io.WriterTo       = (*Stream)(nil)
)

// Stream is a buffered, read-only view of one descriptor. A Stream is not
// safe for concurrent use and must not be copied.
type Stream struct {
	handle    *fd.Handle
	reader    *bufio.Reader
	pool      *fd.Pool
	ownedPool bool
	closed    bool
}

// Open opens path read-only; the stream owns the descriptor.
func Open(path string, options ...Option) (*Stream, error) {
	return OpenFile(path, unix.O_RDONLY, options...)
}

// OpenFile opens path with flags; the stream owns the descriptor.
func OpenFile(path string, flags int, options ...Option) (*Stream, error) {
	handle, err := fd.FromPath(path, flags)
	if err != nil {
		return nil, err
	}
	return newStream(handle, options)
}

// NewStream wraps an open descriptor. The descriptor is borrowed and stays
// open after Close.
func NewStream(id int, options ...Option) (*Stream, error) {
	handle, err := fd.FromDescriptor(id)
	if err != nil {
		return nil, err
	}
	return newStream(handle, options)
}

func newStream(handle *fd.Handle, optionList []Option) (*Stream, error) {
	o := options{bufferSize: DefaultBufferSize}
	for _, option := range optionList {
		option(&o)
	}
	stream := &Stream{handle: handle, pool: o.pool}
	if stream.pool == nil {
		stream.pool = fd.NewPool()
		stream.ownedPool = true
	}
	var (
		reader *bufio.Reader
		err    error
	)
	if o.buffer != nil {
		reader, err = bufio.NewReaderBuffer(handle, stream.pool, o.buffer)
	} else {
		reader, err = bufio.NewReader(handle, stream.pool, o.bufferSize)
	}
	if err != nil {
		return nil, E.Errors(err, handle.Close())
	}
	if o.logger != nil {
		reader.SetLogger(o.logger)
	}
	stream.reader = reader
	return stream, nil
}

func (s *Stream) Kind() Kind {
	return s.handle.Kind()
}

func (s *Stream) Fd() int {
	return s.handle.Fd()
}

// Position returns the absolute position of the next unread byte.
func (s *Stream) Position() int64 {
	return s.reader.Position()
}

// Read fills p until it is full or the input ends; see bufio.Reader.Read.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.reader.Read(p)
}

func (s *Stream) ReadByte() (byte, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.reader.ReadByte()
}

func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.reader.WriteTo(w)
}

// Seek implements io.Seeker. Forward relative seeks skip; anything else
// requires a regular file.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.reader.Seek(offset, whence)
}

// Skip discards count bytes and returns the new position. It fails with
// *SeekError, *TransferError or *PrematureEndError.
func (s *Stream) Skip(count int64) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.reader.Skip(count)
}

// SetBuffer makes the stream read through p from now on, releasing the
// internally owned buffer.
func (s *Stream) SetBuffer(p []byte) error {
	if s.closed {
		return os.ErrClosed
	}
	return s.reader.ReplaceBuffer(p)
}

// Close releases the buffer, closes an owned descriptor and the stream's
// own discard pool.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.reader.Release()
	var poolErr error
	if s.ownedPool {
		poolErr = s.pool.Close()
	}
	return E.Errors(s.handle.Close(), poolErr)
}

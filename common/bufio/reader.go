package bufio

import (
	"io"

	"github.com/sagernet/fdstream/common/buf"
	E "github.com/sagernet/fdstream/common/exceptions"
	"github.com/sagernet/fdstream/common/fd"
	"github.com/sagernet/fdstream/common/log"

	"github.com/sirupsen/logrus"
)

var defaultLogger = log.NewLogger("bufio")

// BufferedSource is the set of hooks a buffered descriptor stream provides
// on top of plain reading.
type BufferedSource interface {
	io.ReadSeeker
	FillOnEmpty() (int, error)
	ReplaceBuffer(p []byte) error
}

var (
	_ BufferedSource = (*Reader)(nil)
	_ io.ByteReader  = (*Reader)(nil)
	_ io.WriterTo    = (*Reader)(nil)
)

// Reader buffers reads from a descriptor handle and turns forward relative
// seeks into skips: bytes already in the window are consumed for free and
// only the remainder reaches the descriptor.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	handle *fd.Handle
	pool   *fd.Pool
	buffer *buf.Buffer
	logger logrus.FieldLogger
	// offset is the descriptor position, i.e. the end of the window.
	offset int64
}

// NewReader creates a Reader with an owned buffer of size bytes. Skips on
// non-regular descriptors borrow resources from pool.
func NewReader(handle *fd.Handle, pool *fd.Pool, size int) (*Reader, error) {
	if size <= 0 {
		return nil, E.New("invalid buffer size ", size)
	}
	return newReader(handle, pool, func() *buf.Buffer { return buf.NewSize(size) })
}

// NewReaderBuffer creates a Reader that reads through caller memory p.
func NewReaderBuffer(handle *fd.Handle, pool *fd.Pool, p []byte) (*Reader, error) {
	if len(p) == 0 {
		return nil, E.New("empty buffer")
	}
	return newReader(handle, pool, func() *buf.Buffer { return buf.With(p) })
}

func newReader(handle *fd.Handle, pool *fd.Pool, newBuffer func() *buf.Buffer) (*Reader, error) {
	var offset int64
	if handle.Kind() == fd.KindRegular {
		var err error
		offset, err = handle.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
	}
	return &Reader{
		handle: handle,
		pool:   pool,
		buffer: newBuffer(),
		logger: defaultLogger,
		offset: offset,
	}, nil
}

func (r *Reader) SetLogger(logger logrus.FieldLogger) {
	r.logger = logger
}

// Position returns the absolute position of the next unread byte.
func (r *Reader) Position() int64 {
	return r.offset - int64(r.buffer.Len())
}

// Buffered returns the number of bytes that can be read without I/O.
func (r *Reader) Buffered() int {
	return r.buffer.Len()
}

// FillOnEmpty refills an exhausted window with a single read and returns
// the number of buffered bytes. Zero means end-of-input.
func (r *Reader) FillOnEmpty() (int, error) {
	if !r.buffer.IsEmpty() {
		return r.buffer.Len(), nil
	}
	r.buffer.Reset()
	n, err := r.handle.Read(r.buffer.FreeBytes())
	if err != nil {
		return 0, err
	}
	r.buffer.Truncate(n)
	r.offset += int64(n)
	return n, nil
}

// Read fills p from the window and the descriptor until p is full or the
// input ends. A short read is not an error; io.EOF is returned only when
// nothing was read.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if r.buffer.IsEmpty() && len(p)-n >= r.buffer.Cap() {
			var readN int
			readN, err = r.handle.Read(p[n:])
			if err != nil {
				return
			}
			if readN == 0 {
				break
			}
			r.offset += int64(readN)
			n += readN
			continue
		}
		var available int
		available, err = r.FillOnEmpty()
		if err != nil {
			return
		}
		if available == 0 {
			break
		}
		readN, _ := r.buffer.Read(p[n:])
		n += readN
	}
	if n == 0 && len(p) > 0 {
		err = io.EOF
	}
	return
}

func (r *Reader) ReadByte() (byte, error) {
	available, err := r.FillOnEmpty()
	if err != nil {
		return 0, err
	}
	if available == 0 {
		return 0, io.EOF
	}
	return r.buffer.ReadByte()
}

// WriteTo copies the rest of the input to w through the window.
func (r *Reader) WriteTo(w io.Writer) (n int64, err error) {
	for {
		var available int
		available, err = r.FillOnEmpty()
		if err != nil || available == 0 {
			return
		}
		var written int64
		written, err = r.buffer.WriteTo(w)
		n += written
		if err != nil {
			return
		}
	}
}

// Seek serves forward io.SeekCurrent requests through Skip. Every other
// request is a plain reposition, available on regular files only.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset >= 0 {
		return r.Skip(offset)
	}
	if r.handle.Kind() != fd.KindRegular {
		return r.Position(), &fd.SeekError{Fd: r.handle.Fd(), Err: fd.ErrUnsupportedSeek}
	}
	if whence == io.SeekCurrent {
		offset -= int64(r.buffer.Len())
	}
	position, err := r.handle.Seek(offset, whence)
	if err != nil {
		return r.Position(), err
	}
	r.buffer.Reset()
	r.offset = position
	return position, nil
}

// Skip discards the next n bytes and returns the new position. Buffered
// bytes are consumed first; the rest is discarded by fd.Skip without
// passing through the window.
func (r *Reader) Skip(n int64) (int64, error) {
	if n < 0 {
		return r.Position(), &fd.SeekError{Fd: r.handle.Fd(), Err: E.New("negative skip of ", n, " bytes")}
	}
	buffered := int64(r.buffer.Len())
	if n <= buffered {
		r.buffer.Advance(int(n))
		return r.Position(), nil
	}
	r.buffer.Reset()
	remainder := n - buffered
	r.logger.Debug("skip ", n, " bytes: ", buffered, " buffered, ", remainder, " on ", r.handle.Kind(), " fd ", r.handle.Fd())
	err := fd.Skip(r.handle, r.pool, remainder)
	if err != nil {
		if progress, hasProgress := E.Cast[fd.Progress](err); hasProgress {
			r.offset += progress.Discarded()
		}
		return r.Position(), err
	}
	r.offset += remainder
	return r.Position(), nil
}

// ReplaceBuffer installs caller memory as the window and releases the owned
// buffer, if any. The window restarts empty. On regular files the
// descriptor is rewound over unread bytes so none are lost. On fifos and
// other streams unread bytes cannot be pushed back: they are dropped and
// Position advances by their count. Call Buffered first to see how many
// bytes that would be.
func (r *Reader) ReplaceBuffer(p []byte) error {
	if len(p) == 0 {
		return E.New("replace with empty buffer")
	}
	if unread := int64(r.buffer.Len()); unread > 0 && r.handle.Kind() == fd.KindRegular {
		position, err := r.handle.Seek(-unread, io.SeekCurrent)
		if err != nil {
			return err
		}
		r.offset = position
	}
	r.buffer.Release()
	r.buffer = buf.With(p)
	return nil
}

// Release returns the owned buffer to the pool. The handle is left open.
func (r *Reader) Release() {
	r.buffer.Release()
}

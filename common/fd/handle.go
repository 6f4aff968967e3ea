package fd

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// noCopy lets go vet flag handles passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle speaks for exactly one descriptor. An owned handle closes it once
// on Close; a borrowed handle never does.
type Handle struct {
	noCopy noCopy
	fd     int
	kind   Kind
	owned  bool
	closed bool
}

// FromDescriptor borrows an already open descriptor.
func FromDescriptor(id int) (*Handle, error) {
	kind, err := classify(id)
	if err != nil {
		return nil, &OpenError{Subject: "fd " + strconv.Itoa(id), Err: err}
	}
	return &Handle{fd: id, kind: kind}, nil
}

// FromPath opens path with flags and takes ownership of the descriptor.
func FromPath(path string, flags int) (*Handle, error) {
	var (
		id  int
		err error
	)
	for {
		id, err = unix.Open(path, flags|unix.O_CLOEXEC, 0)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, &OpenError{Subject: path, Err: err}
	}
	kind, err := classify(id)
	if err != nil {
		unix.Close(id)
		return nil, &OpenError{Subject: path, Err: err}
	}
	return &Handle{fd: id, kind: kind, owned: true}, nil
}

func Open(path string) (*Handle, error) {
	return FromPath(path, unix.O_RDONLY)
}

func (h *Handle) Fd() int {
	return h.fd
}

func (h *Handle) Kind() Kind {
	return h.kind
}

func (h *Handle) Owned() bool {
	return h.owned
}

// Read issues one read(2). Zero bytes with a nil error is end-of-input.
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, &ReadError{Fd: h.fd, Err: os.ErrClosed}
	}
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := unix.Read(h.fd, p)
		if err == nil {
			return n, nil
		}
		if err != unix.EINTR {
			return 0, &ReadError{Fd: h.fd, Err: err}
		}
	}
}

// Seek repositions a regular file and returns the new absolute offset.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return 0, &SeekError{Fd: h.fd, Err: os.ErrClosed}
	}
	if h.kind != KindRegular {
		return 0, &SeekError{Fd: h.fd, Err: ErrUnsupportedSeek}
	}
	position, err := unix.Seek(h.fd, offset, whence)
	if err != nil {
		return 0, &SeekError{Fd: h.fd, Err: err}
	}
	return position, nil
}

func (h *Handle) Close() error {
	if h.closed {
		return os.ErrClosed
	}
	h.closed = true
	if !h.owned {
		return nil
	}
	return unix.Close(h.fd)
}

package buf

import (
	"fmt"
	"io"
)

// Buffer is a read window [start, end) over data[:capacity]. Buffers from
// NewSize are managed and return their storage to the pool on Release;
// buffers from With wrap caller memory and never release it.
type Buffer struct {
	data     []byte
	start    int
	end      int
	capacity int
	managed  bool
}

func New() *Buffer {
	return NewSize(BufferSize)
}

func NewSize(size int) *Buffer {
	if size <= 0 {
		panic(fmt.Sprint("buf: invalid buffer size ", size))
	}
	return &Buffer{
		data:     Get(size),
		capacity: size,
		managed:  true,
	}
}

func With(data []byte) *Buffer {
	return &Buffer{
		data:     data,
		capacity: len(data),
	}
}

func (b *Buffer) Managed() bool {
	return b.managed
}

func (b *Buffer) Advance(n int) {
	if b.start+n > b.end {
		panic(fmt.Sprint("buffer underflow: length ", b.end-b.start, ", advance ", n))
	}
	b.start += n
}

func (b *Buffer) Truncate(to int) {
	if b.start+to > b.capacity {
		panic(fmt.Sprint("buffer overflow: capacity ", b.capacity, ", start ", b.start, ", need ", to))
	}
	b.end = b.start + to
}

func (b *Buffer) Read(data []byte) (n int, err error) {
	if b.IsEmpty() {
		return 0, io.EOF
	}
	n = copy(data, b.data[b.start:b.end])
	b.start += n
	return
}

func (b *Buffer) ReadByte() (byte, error) {
	if b.IsEmpty() {
		return 0, io.EOF
	}
	nb := b.data[b.start]
	b.start++
	return nb, nil
}

// WriteTo writes the unread bytes and consumes what w accepted.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	b.start += n
	return int64(n), err
}

func (b *Buffer) Reset() {
	b.start = 0
	b.end = 0
}

// Release returns managed storage to the pool. Releasing twice is a no-op.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	if b.managed {
		Put(b.data)
	}
	*b = Buffer{}
}

func (b *Buffer) Len() int {
	return b.end - b.start
}

func (b *Buffer) Cap() int {
	return b.capacity
}

func (b *Buffer) Bytes() []byte {
	return b.data[b.start:b.end]
}

func (b *Buffer) FreeBytes() []byte {
	return b.data[b.end:b.capacity]
}

func (b *Buffer) IsEmpty() bool {
	return b.end-b.start == 0
}

func (b *Buffer) IsFull() bool {
	return b.end == b.capacity
}

package buf

import "sync"

const BufferSize = 8 * 1024

var pool = sync.Pool{
	New: func() any {
		buffer := make([]byte, BufferSize)
		return &buffer
	},
}

// Get returns a slice of exactly size bytes. Slices of BufferSize come
// from the shared pool.
func Get(size int) []byte {
	if size != BufferSize {
		return make([]byte, size)
	}
	return *pool.Get().(*[]byte)
}

// Put hands a slice obtained from Get back. Only BufferSize slices are
// pooled; other sizes are left to the garbage collector.
func Put(buffer []byte) bool {
	if cap(buffer) != BufferSize {
		return false
	}
	buffer = buffer[:BufferSize]
	pool.Put(&buffer)
	return true
}

package fdstream

import (
	"github.com/sagernet/fdstream/common/buf"
	"github.com/sagernet/fdstream/common/fd"

	"github.com/sirupsen/logrus"
)

const DefaultBufferSize = buf.BufferSize

type options struct {
	bufferSize int
	buffer     []byte
	pool       *fd.Pool
	logger     logrus.FieldLogger
}

type Option func(o *options)

// WithBufferSize sets the size of the internally owned buffer.
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// WithBuffer makes the stream read through caller memory from the start.
func WithBuffer(p []byte) Option {
	return func(o *options) {
		o.buffer = p
	}
}

// WithPool shares a discard resource pool between streams driven from the
// same goroutine. The stream never closes an injected pool.
func WithPool(pool *fd.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

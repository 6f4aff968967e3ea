package common

import (
	"cmp"
	"io"
)

func DefaultValue[T any]() T {
	var defaultValue T
	return defaultValue
}

func Min[T cmp.Ordered](x, y T) T {
	return min(x, y)
}

// Close closes every non-nil closer and returns their errors in order.
func Close(closers ...io.Closer) []error {
	var errors []error
	for _, closer := range closers {
		if closer == nil {
			continue
		}
		if err := closer.Close(); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

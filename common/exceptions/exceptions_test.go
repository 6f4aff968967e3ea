package exceptions

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type codeError struct{ code int }

func (e *codeError) Error() string { return "code" }

func TestCause(t *testing.T) {
	t.Parallel()
	err := Cause(io.ErrUnexpectedEOF, "read header")
	require.Equal(t, "read header: unexpected EOF", err.Error())
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	require.NoError(t, Errors(nil, nil))
	require.Equal(t, os.ErrClosed, Errors(nil, os.ErrClosed))
	err := Errors(os.ErrClosed, io.EOF)
	require.ErrorIs(t, err, os.ErrClosed)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "file already closed | EOF", err.Error())
}

func TestCast(t *testing.T) {
	t.Parallel()
	err := Cause(Errors(io.EOF, &codeError{42}), "close")
	inner, isCode := Cast[*codeError](err)
	require.True(t, isCode)
	require.Equal(t, 42, inner.code)
	_, isCode = Cast[*codeError](io.EOF)
	require.False(t, isCode)
	_, isCode = Cast[*codeError](nil)
	require.False(t, isCode)
}

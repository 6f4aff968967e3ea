package buf_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/sagernet/fdstream/common/buf"

	"github.com/stretchr/testify/require"
)

func TestBufferWindow(t *testing.T) {
	t.Parallel()
	buffer := buf.NewSize(16)
	defer buffer.Release()
	require.True(t, buffer.Managed())
	require.True(t, buffer.IsEmpty())
	require.Len(t, buffer.FreeBytes(), 16)

	n := copy(buffer.FreeBytes(), "hello world")
	buffer.Truncate(n)
	require.Equal(t, 11, buffer.Len())

	b, err := buffer.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('h'), b)

	buffer.Advance(5)
	require.Equal(t, []byte("world"), buffer.Bytes())

	var output bytes.Buffer
	written, err := buffer.WriteTo(&output)
	require.NoError(t, err)
	require.EqualValues(t, 5, written)
	require.True(t, buffer.IsEmpty())

	_, err = buffer.Read(make([]byte, 1))
	require.ErrorIs(t, err, io.EOF)
}

func TestBufferReleaseOnce(t *testing.T) {
	t.Parallel()
	buffer := buf.New()
	require.Equal(t, buf.BufferSize, buffer.Cap())
	buffer.Release()
	require.False(t, buffer.Managed())
	require.Zero(t, buffer.Cap())
	buffer.Release()
}

func TestBufferWithCallerMemory(t *testing.T) {
	t.Parallel()
	data := make([]byte, 4)
	buffer := buf.With(data)
	require.False(t, buffer.Managed())
	copy(buffer.FreeBytes(), "abcd")
	buffer.Truncate(4)
	require.True(t, buffer.IsFull())
	buffer.Release()
	require.Equal(t, []byte("abcd"), data)
}

func TestPutPoolsOnlyDefaultSize(t *testing.T) {
	t.Parallel()
	require.False(t, buf.Put(make([]byte, 10)))
	require.True(t, buf.Put(buf.Get(buf.BufferSize)))
	require.Len(t, buf.Get(100), 100)
}

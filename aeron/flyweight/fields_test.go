package flyweight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
)

func TestInt64Field(t *testing.T) {
	raw := make([]byte, 64)
	var buf atomic.Buffer
	buf.WrapSlice(raw)

	f := NewInt64Field(&buf, 8)
	f.Set(42)
	require.Equal(t, int64(42), f.Get())

	f.SetOrdered(100)
	require.Equal(t, int64(100), f.GetVolatile())

	require.True(t, f.CompareAndSet(100, 200))
	require.Equal(t, int64(200), f.Get())

	prior := f.GetAndAddInt64(5)
	require.Equal(t, int64(200), prior)
	require.Equal(t, int64(205), f.Get())
}

func TestInt32Field(t *testing.T) {
	raw := make([]byte, 32)
	var buf atomic.Buffer
	buf.WrapSlice(raw)

	f := NewInt32Field(&buf, 0)
	f.Set(7)
	require.Equal(t, int32(7), f.Get())
	f.SetOrdered(9)
	require.Equal(t, int32(9), f.GetVolatile())
	require.True(t, f.CompareAndSet(9, 11))
	require.False(t, f.CompareAndSet(9, 13))
}

func TestBoolField(t *testing.T) {
	raw := make([]byte, 32)
	var buf atomic.Buffer
	buf.WrapSlice(raw)

	f := NewBoolField(&buf, 0)
	require.False(t, f.Get())
	f.Set(true)
	require.True(t, f.Get())

	f.SetOrdered(false)
	require.False(t, f.GetVolatile())
}

func TestBytesField(t *testing.T) {
	raw := make([]byte, 64)
	var buf atomic.Buffer
	buf.WrapSlice(raw)

	f := NewBytesField(&buf, 16, 8)
	require.Equal(t, int32(8), f.Length())

	src := make([]byte, 8)
	for i := range src {
		src[i] = byte(i + 1)
	}
	var srcBuf atomic.Buffer
	srcBuf.WrapSlice(src)
	f.Put(&srcBuf)

	require.Equal(t, src, raw[16:24])
}

package term

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
	"github.com/skehrli/aeron-logbuffer/aeron/logbuffer"
)

func newTestLogBuffers(t *testing.T, termLength int32) *logbuffer.LogBuffers {
	t.Helper()

	var terms [logbuffer.PartitionCount][]byte
	for i := range terms {
		terms[i] = make([]byte, termLength)
	}
	metaBuf := make([]byte, logbuffer.MetaDataLength)

	lb, err := logbuffer.NewLogBuffers(terms, metaBuf)
	require.NoError(t, err)

	header := make([]byte, logbuffer.DataFrameHeader.Length)
	require.NoError(t, lb.Meta().SetDefaultFrameHeader(header))

	logbuffer.InitializeMetaData(lb.Meta(), 7, termLength, 1408, 4096)

	return lb
}

func TestAppendUnfragmentedMessage(t *testing.T) {
	lb := newTestLogBuffers(t, 65536)
	appender := MakeAppender(lb, 0)

	msg := []byte("hello, log buffer")
	var src atomic.Buffer
	src.WrapSlice(msg)

	var result AppenderResult
	appender.AppendUnfragmentedMessage(&result, &src, 0, int32(len(msg)), DefaultReservedValueSupplier)

	require.EqualValues(t, 7, result.TermID())
	require.Greater(t, result.TermOffset(), int64(0))

	frameLength := logbuffer.FrameLengthVolatile(lb.Buffer(0), 0)
	require.Equal(t, int32(len(msg))+logbuffer.DataFrameHeader.Length, frameLength)
}

func TestAppendFragmentedMessage(t *testing.T) {
	lb := newTestLogBuffers(t, 65536)
	appender := MakeAppender(lb, 0)

	msg := make([]byte, 5000)
	for i := range msg {
		msg[i] = byte(i)
	}
	var src atomic.Buffer
	src.WrapSlice(msg)

	var result AppenderResult
	appender.AppendFragmentedMessage(&result, &src, 0, int32(len(msg)), 1408, DefaultReservedValueSupplier)

	require.EqualValues(t, 7, result.TermID())

	outcome := Read(lb.Buffer(0), 0, func(buffer *atomic.Buffer, offset, length int32, header *logbuffer.Header) {
	}, 16, new(logbuffer.Header))
	require.Equal(t, 4, outcome.FragmentsRead)
}

func TestAppendTripsAtEndOfTerm(t *testing.T) {
	termLength := int32(1 << 16)
	lb := newTestLogBuffers(t, termLength)
	appender := MakeAppender(lb, 0)

	// Prime the tail close to the end of the term.
	almostFull := termLength - 64
	appender.metaData.SetRawTail(0, logbuffer.PackTail(7, almostFull))

	msg := make([]byte, 100)
	var src atomic.Buffer
	src.WrapSlice(msg)

	var result AppenderResult
	appender.AppendUnfragmentedMessage(&result, &src, 0, int32(len(msg)), DefaultReservedValueSupplier)

	require.Equal(t, AppenderTripped, result.TermOffset())
}

package term

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
	"github.com/skehrli/aeron-logbuffer/aeron/logbuffer"
)

func TestReadStopsAtUnpublishedFrame(t *testing.T) {
	raw := make([]byte, 4096)
	var termBuffer atomic.Buffer
	termBuffer.WrapSlice(raw)

	var delivered int
	outcome := Read(&termBuffer, 0, func(buffer *atomic.Buffer, offset, length int32, header *logbuffer.Header) {
		delivered++
	}, 16, new(logbuffer.Header))

	require.Equal(t, 0, delivered)
	require.Equal(t, 0, outcome.FragmentsRead)
	require.Equal(t, int32(0), outcome.Offset)
}

func TestReadSkipsPadding(t *testing.T) {
	raw := make([]byte, 4096)
	var termBuffer atomic.Buffer
	termBuffer.WrapSlice(raw)

	paddingLength := int32(64)
	logbuffer.SetFrameType(&termBuffer, 0, logbuffer.DataFrameHeader.TypePad)
	logbuffer.FrameLengthOrdered(&termBuffer, 0, paddingLength)

	dataOffset := logbuffer.AlignedFrameLength(0, paddingLength)
	logbuffer.SetFrameType(&termBuffer, dataOffset, logbuffer.DataFrameHeader.TypeData)
	dataFrameLength := logbuffer.DataFrameHeader.Length + 10
	logbuffer.FrameLengthOrdered(&termBuffer, dataOffset, dataFrameLength)

	var delivered []int32
	outcome := Read(&termBuffer, 0, func(buffer *atomic.Buffer, offset, length int32, header *logbuffer.Header) {
		delivered = append(delivered, offset)
	}, 16, new(logbuffer.Header))

	require.Equal(t, 1, outcome.FragmentsRead)
	require.Len(t, delivered, 1)
	require.Equal(t, dataOffset+logbuffer.DataFrameHeader.Length, delivered[0])
}

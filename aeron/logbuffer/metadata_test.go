package logbuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newMetaForTest(t *testing.T) *LogMetaDataFlyweight {
	t.Helper()
	buf := make([]byte, MetaDataLength)
	m, err := WrapLogMetaData(buf)
	require.NoError(t, err)
	return m
}

func TestWrapLogMetaDataRejectsShortBuffer(t *testing.T) {
	_, err := WrapLogMetaData(make([]byte, 100))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestRawTailOffsets(t *testing.T) {
	m := newMetaForTest(t)
	m.SetRawTail(0, PackTail(7, 0))
	m.SetRawTail(1, PackTail(8, 0))
	m.SetRawTail(2, PackTail(9, 0))

	require.Equal(t, PackTail(7, 0), m.RawTail(0))
	require.Equal(t, PackTail(8, 0), m.RawTail(1))
	require.Equal(t, PackTail(9, 0), m.RawTail(2))

	require.True(t, m.CasRawTail(0, PackTail(7, 0), PackTail(7, 65536)))
	require.Equal(t, PackTail(7, 65536), m.RawTailVolatile(0))
	require.False(t, m.CasRawTail(0, PackTail(7, 0), PackTail(7, 1)))
}

func TestActiveTermCountLifecycle(t *testing.T) {
	m := newMetaForTest(t)
	m.SetActiveTermCount(0)
	require.EqualValues(t, 0, m.ActiveTermCountVolatile())

	require.True(t, m.CasActiveTermCount(0, 1))
	require.EqualValues(t, 1, m.ActiveTermCount())
	require.False(t, m.CasActiveTermCount(0, 2))
}

func TestIsConnectedOrdering(t *testing.T) {
	m := newMetaForTest(t)
	require.False(t, m.IsConnectedVolatile())
	m.SetIsConnectedOrdered(true)
	require.True(t, m.IsConnectedVolatile())
}

func TestConfigurationScalarsRoundTrip(t *testing.T) {
	m := newMetaForTest(t)

	m.SetCorrelationID(123456789)
	require.EqualValues(t, 123456789, m.CorrelationID())

	m.SetInitialTermID(42)
	require.EqualValues(t, 42, m.InitialTermID())

	m.SetTermLength(65536)
	require.EqualValues(t, 65536, m.TermLength())

	m.SetMTULength(1408)
	require.EqualValues(t, 1408, m.MTULength())

	m.SetPageSize(4096)
	require.EqualValues(t, 4096, m.PageSize())

	m.SetLingerTimeoutNs(5_000_000_000)
	require.EqualValues(t, 5_000_000_000, m.LingerTimeoutNs())

	m.SetTether(true)
	require.True(t, m.Tether())

	m.SetSparse(true)
	require.True(t, m.Sparse())

	m.SetGroup(true)
	require.True(t, m.Group())
}

// S5: default header round trip.
func TestDefaultFrameHeaderRoundTrip(t *testing.T) {
	m := newMetaForTest(t)

	header := make([]byte, DataFrameHeader.Length)
	for i := range header {
		header[i] = byte(i + 1)
	}

	require.NoError(t, m.SetDefaultFrameHeader(header))

	view := m.DefaultFrameHeader()
	for i, want := range header {
		require.Equal(t, want, view.GetUInt8(int32(i)), "byte %d", i)
	}
}

func TestDefaultFrameHeaderRejectsWrongLength(t *testing.T) {
	m := newMetaForTest(t)
	err := m.SetDefaultFrameHeader(make([]byte, DataFrameHeader.Length+1))
	require.ErrorIs(t, err, ErrInvalidLength)
}

// Padding between fields must be preserved bit-exactly: writing a field
// must never spill into its neighbour's reserved gap.
func TestFieldsDoNotOverlapPadding(t *testing.T) {
	m := newMetaForTest(t)

	m.SetActiveTermCount(0x11111111)
	m.buffer.PutInt64(EndOfStreamPositionOffset, 0)
	require.EqualValues(t, 0x11111111, m.ActiveTermCount())

	m.SetEndOfStreamPositionOrdered(0x2222222222222222)
	require.EqualValues(t, 0x11111111, m.ActiveTermCount())
	require.EqualValues(t, 0x2222222222222222, m.EndOfStreamPositionVolatile())
}

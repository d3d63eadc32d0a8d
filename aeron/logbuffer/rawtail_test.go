package logbuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// P1: round-trip of packed tail.
func TestPackTailRoundTrip(t *testing.T) {
	cases := []struct {
		termID int32
		offset int32
	}{
		{0, 0},
		{7, 65536},
		{-1, 1},
		{0x7FFFFFFF, 0},
		{int32(0x80000000), 12345},
	}
	for _, c := range cases {
		packed := PackTail(c.termID, c.offset)
		require.Equal(t, c.termID, TermID(packed))
		require.Equal(t, uint32(c.offset), uint32(packed))
	}
}

func TestTermOffsetSaturates(t *testing.T) {
	packed := PackTail(7, 70000)
	require.Equal(t, int32(65536), TermOffset(packed, 65536))

	packed2 := PackTail(7, 100)
	require.Equal(t, int32(100), TermOffset(packed2, 65536))
}

// S1: rawTail[0] = packTail(7, 0) = 0x0000_0007_0000_0000.
func TestPackTailScenario(t *testing.T) {
	require.Equal(t, int64(0x0000000700000000), PackTail(7, 0))
}

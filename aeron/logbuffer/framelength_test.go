package logbuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// P6 + S6: fragmented frame length round trip and the exact example.
func TestFragmentedLengthScenario(t *testing.T) {
	// 5000 = 3*1408 + 776, so
	// fragmentedLength(5000, 1408) == 3*(1408+32) + align(776+32, 32) = 4320 + 832 = 5152
	got := FragmentedFrameLength(5000, 1408)
	require.Equal(t, int64(5152), got)
}

func TestAssembledLengthEqualsHeaderPlusLength(t *testing.T) {
	for _, l := range []int64{0, 1, 1407, 1408, 1409, 5000, 1 << 20} {
		for _, p := range []int32{1, 100, 1408, 4096} {
			got := AssembledLength(l, p)
			require.Equal(t, int64(DataFrameHeader.Length)+l, got)
		}
	}
}

// Holds for L > 0; at L == 0 fragmentedLength returns 0 (no fragment is
// ever written for an empty message) while assembledLength still counts
// the header, so the two diverge at that single boundary.
func TestFragmentedGreaterOrEqualAssembled(t *testing.T) {
	for _, l := range []int64{1, 1407, 1408, 1409, 5000, 1 << 16} {
		for _, p := range []int32{1, 100, 1408, 4096} {
			frag := FragmentedFrameLength(l, p)
			asm := AssembledLength(l, p)
			require.GreaterOrEqual(t, frag, asm)
		}
	}
}

package util

import "testing"

func TestAlignInt32(t *testing.T) {
	cases := []struct {
		value, alignment, want int32
	}{
		{0, 32, 0},
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{2184 + 32, 32, 2240},
	}
	for _, c := range cases {
		if got := AlignInt32(c.value, c.alignment); got != c.want {
			t.Errorf("AlignInt32(%d, %d) = %d, want %d", c.value, c.alignment, got, c.want)
		}
	}
}

func TestNumberOfTrailingZeroes(t *testing.T) {
	cases := []struct {
		value int32
		want  uint8
	}{
		{1 << 16, 16},
		{1 << 20, 20},
		{1 << 30, 30},
	}
	for _, c := range cases {
		if got := NumberOfTrailingZeroes(c.value); got != c.want {
			t.Errorf("NumberOfTrailingZeroes(%d) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, v := range []int32{1, 2, 4, 1024, 1 << 20} {
		if !IsPowerOfTwo(v) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", v)
		}
	}
	for _, v := range []int32{0, -1, 3, 5, 1000} {
		if IsPowerOfTwo(v) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", v)
		}
	}
}

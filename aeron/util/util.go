/*
Copyright 2016 Stanislav Liberman

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package util holds small numeric helpers shared across the aeron
// packages: alignment, bit counting and power-of-two checks.
package util

import "math/bits"

// AlignInt32 rounds value up to the next multiple of alignment. alignment
// must be a power of two.
func AlignInt32(value, alignment int32) int32 {
	return (value + (alignment - 1)) &^ (alignment - 1)
}

// AlignInt64 rounds value up to the next multiple of alignment. alignment
// must be a power of two.
func AlignInt64(value, alignment int64) int64 {
	return (value + (alignment - 1)) &^ (alignment - 1)
}

// NumberOfTrailingZeroes returns the number of trailing zero bits in value,
// i.e. log2(value) when value is a power of two.
func NumberOfTrailingZeroes(value int32) uint8 {
	if value == 0 {
		return 32
	}
	return uint8(bits.TrailingZeros32(uint32(value)))
}

// IsPowerOfTwo reports whether value is a positive power of two.
func IsPowerOfTwo(value int32) bool {
	return value > 0 && (value&(value-1)) == 0
}

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

package logbuffer

import "github.com/skehrli/aeron-logbuffer/aeron/util"

// PositionBitsToShift returns log2(termLength). termLength must be one of
// the 15 permitted term lengths between 64 KiB and 1 GiB inclusive; any
// other value is rejected with ErrInvalidArgument.
func PositionBitsToShift(termLength int32) (uint8, error) {
	if !util.IsPowerOfTwo(termLength) || termLength < TermMinLength || termLength > TermMaxLength {
		return 0, ErrInvalidArgument
	}
	return util.NumberOfTrailingZeroes(termLength), nil
}

// ComputeTermCount returns activeTermId - initialTermId as a 32-bit signed
// subtraction, so that a wrap of the 32-bit term id around the full range
// is handled as a simple positive-or-negative delta.
func ComputeTermCount(activeTermID, initialTermID int32) int64 {
	return int64(activeTermID - initialTermID)
}

// ComputePosition returns the absolute stream position corresponding to
// termOffset within activeTermID, given the shift derived from the term
// length and the log's initialTermID.
func ComputePosition(activeTermID int32, termOffset int32, shift uint8, initialTermID int32) int64 {
	termCount := ComputeTermCount(activeTermID, initialTermID)
	return (termCount << shift) + int64(termOffset)
}

// ComputeTermBeginPosition returns the position of offset 0 of activeTermID.
func ComputeTermBeginPosition(activeTermID int32, shift uint8, initialTermID int32) int64 {
	termCount := ComputeTermCount(activeTermID, initialTermID)
	return termCount << shift
}

// ComputeTermIdFromPosition returns the term id that owns position, given
// shift and initialTermID. The addition wraps in 32 bits, matching the way
// term ids themselves wrap.
func ComputeTermIdFromPosition(position int64, shift uint8, initialTermID int32) int32 {
	return int32(uint64(position)>>shift) + initialTermID
}

// IndexByPosition returns the partition index, in [0,3), owning position.
func IndexByPosition(position int64, shift uint8) int32 {
	termCount := position >> shift
	return int32(termCount % PartitionCount)
}

// IndexByTerm returns the partition index for a term id relative to
// initialTermID.
func IndexByTerm(initialTermID, activeTermID int32) int32 {
	return int32(int64(activeTermID-initialTermID) % PartitionCount)
}

// IndexByTermCount returns the partition index for a given rotation count.
func IndexByTermCount(termCount int64) int32 {
	return int32(termCount % PartitionCount)
}

// NextPartitionIndex returns the partition index that follows index.
func NextPartitionIndex(index int32) int32 {
	return (index + 1) % PartitionCount
}

// RotatePartitionIndex returns the partition index reached by rotating
// forward delta times from activePartitionIndex. Used to locate the
// previous (delta negative, mod 3) or next (delta positive) partition
// relative to the active one.
func RotatePartitionIndex(activePartitionIndex int32, delta int32) int32 {
	return ((activePartitionIndex+delta)%PartitionCount + PartitionCount) % PartitionCount
}

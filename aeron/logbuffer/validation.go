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

import (
	"fmt"

	"github.com/skehrli/aeron-logbuffer/aeron/util"
)

// CheckTermLength rejects any termLength that is not a power of two in
// [TermMinLength, TermMaxLength].
func CheckTermLength(termLength int32) error {
	if !util.IsPowerOfTwo(termLength) {
		return fmt.Errorf("%w: term length %d is not a power of two", ErrInvalidLength, termLength)
	}
	if termLength < TermMinLength || termLength > TermMaxLength {
		return fmt.Errorf("%w: term length %d outside [%d, %d]", ErrInvalidLength, termLength, TermMinLength, TermMaxLength)
	}
	return nil
}

// CheckPageSize rejects any pageSize that is not a power of two in
// [PageMinSize, PageMaxSize].
func CheckPageSize(pageSize int32) error {
	if !util.IsPowerOfTwo(pageSize) {
		return fmt.Errorf("%w: page size %d is not a power of two", ErrInvalidLength, pageSize)
	}
	if pageSize < PageMinSize || pageSize > PageMaxSize {
		return fmt.Errorf("%w: page size %d outside [%d, %d]", ErrInvalidLength, pageSize, PageMinSize, PageMaxSize)
	}
	return nil
}

// checkHeaderLength rejects a default header whose length does not match
// DataFrameHeader.Length exactly.
func checkHeaderLength(length int32) error {
	if length != DataFrameHeader.Length {
		return fmt.Errorf("%w: default header length %d, expected %d", ErrInvalidLength, length, DataFrameHeader.Length)
	}
	return nil
}

// CheckPartitionGaps verifies the raw tail term ids of the two partitions
// other than activePartitionIndex each sit a permitted distance from
// activeTermID. Once a log has rotated at least once, a neighbour is
// either one term behind (just vacated), two terms behind (not yet
// reused), or one term ahead (primed at initialisation and not yet
// reached, which is the case right after the first rotation); any other
// gap means the metadata was
// corrupted or belongs to a different log instance. A never-rotated log
// (activeTermCount == 0) is the one exception: initialisation primes all
// three partitions ahead of time, so its two neighbours sit one and two
// terms ahead rather than behind.
func CheckPartitionGaps(metaData *LogMetaDataFlyweight, activeTermCount int32, activeTermID int32, activePartitionIndex int32) error {
	for delta := int32(1); delta < PartitionCount; delta++ {
		index := RotatePartitionIndex(activePartitionIndex, delta)
		rawTail := metaData.RawTailVolatile(index)
		gap := int64(TermID(rawTail)) - int64(activeTermID)

		legal := gap == -2 || gap == -1 || gap == 1
		if activeTermCount == 0 {
			legal = gap == int64(delta)
		}
		if !legal {
			return fmt.Errorf("%w: partition %d term id gap %d from active term %d", ErrInvalidArgument, index, gap, activeTermID)
		}
	}
	return nil
}

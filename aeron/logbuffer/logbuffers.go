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

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
)

// LogBuffers owns the PartitionCount term buffers plus the metadata
// section of a single log buffer file, however that memory was obtained
// (an in-process allocation for tests, or a memory-mapped file for a real
// transport). It never truncates or reallocates the regions it wraps.
type LogBuffers struct {
	termBuffers [PartitionCount]atomic.Buffer
	metaData    *LogMetaDataFlyweight
	termLength  int32
}

// NewLogBuffers wraps raw already-allocated regions: three term buffers
// of identical length and one metadata region of MetaDataLength bytes.
// It is the constructor tests use; MapLogBuffers is the one real
// callers use against an actual file.
func NewLogBuffers(terms [PartitionCount][]byte, metaData []byte) (*LogBuffers, error) {
	termLength := int32(len(terms[0]))
	if err := CheckTermLength(termLength); err != nil {
		return nil, err
	}
	for i := 1; i < PartitionCount; i++ {
		if int32(len(terms[i])) != termLength {
			return nil, fmt.Errorf("%w: partition %d length %d != partition 0 length %d",
				ErrInvalidLength, i, len(terms[i]), termLength)
		}
	}

	meta, err := WrapLogMetaData(metaData)
	if err != nil {
		return nil, err
	}

	lb := &LogBuffers{metaData: meta, termLength: termLength}
	for i := 0; i < PartitionCount; i++ {
		lb.termBuffers[i].WrapSlice(terms[i])
	}
	return lb, nil
}

// VerifyTermLength checks that the termLength
// recorded in metadata must agree with the layout this LogBuffers was
// actually constructed with. A mismatch means the file is corrupt and
// must be surfaced rather than silently tolerated. A stored length of
// zero is treated as not yet recorded and is accepted.
func (lb *LogBuffers) VerifyTermLength() error {
	stored := lb.metaData.TermLength()
	if stored != 0 && stored != lb.termLength {
		return fmt.Errorf("%w: metadata term length %d does not match mapped layout length %d",
			ErrInvalidLength, stored, lb.termLength)
	}
	return nil
}

// Buffer returns the term buffer for partition index i.
func (lb *LogBuffers) Buffer(i int) *atomic.Buffer {
	return &lb.termBuffers[i]
}

// Meta returns the metadata accessor.
func (lb *LogBuffers) Meta() *LogMetaDataFlyweight {
	return lb.metaData
}

// TermLength returns the length, in bytes, of each term partition.
func (lb *LogBuffers) TermLength() int32 {
	return lb.termLength
}

// FileLength returns the total length of the backing file this log buffer
// occupies: three term partitions plus the metadata section, rounded up
// to filePageSize.
func FileLength(termLength int32, filePageSize int32) int64 {
	raw := int64(termLength)*PartitionCount + int64(MetaDataLength)
	return alignInt64(raw, int64(filePageSize))
}

func alignInt64(value, alignment int64) int64 {
	return (value + (alignment - 1)) &^ (alignment - 1)
}

// VerifyPartitionGaps checks that the two inactive partitions' raw tail
// term ids sit a permitted distance from the currently active term, as
// derived from the metadata's own initialTermID and activeTermCount.
func (lb *LogBuffers) VerifyPartitionGaps() error {
	activeTermCount := lb.metaData.ActiveTermCountVolatile()
	activeTermID := lb.metaData.InitialTermID() + activeTermCount
	activePartitionIndex := IndexByTermCount(int64(activeTermCount))
	return CheckPartitionGaps(lb.metaData, activeTermCount, activeTermID, activePartitionIndex)
}

// InitializeMetaData primes a freshly created log buffer's metadata and
// raw tails; it clears nothing, so every field it does not set keeps
// whatever value it had. Partitions 0/1/2 get term ids
// initialTermID+0, +1, +2 respectively, each at offset 0, and
// activeTermCount starts at 0. This runs once, by whichever actor creates
// the file, before it is published to any producer or consumer.
func InitializeMetaData(meta *LogMetaDataFlyweight, initialTermID int32, termLength int32, mtuLength int32, pageSize int32) {
	meta.SetTermLength(termLength)
	meta.SetMTULength(mtuLength)
	meta.SetPageSize(pageSize)
	meta.SetInitialTermID(initialTermID)
	meta.SetDefaultFrameHeaderLength(DataFrameHeader.Length)

	for i := int32(0); i < PartitionCount; i++ {
		meta.SetRawTail(i, PackTail(initialTermID+i, 0))
	}
	meta.SetActiveTermCount(0)
}

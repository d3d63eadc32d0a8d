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

package term

import (
	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
	"github.com/skehrli/aeron-logbuffer/aeron/logbuffer"
)

// FragmentHandler is invoked once per complete data frame read from a
// term. Fragment reassembly across BEGIN_FRAG/END_FRAG boundaries is a
// higher-level subscription-image concern and out of scope here; handlers
// that want reassembled messages wrap this with their own assembler.
type FragmentHandler func(buffer *atomic.Buffer, offset int32, length int32, header *logbuffer.Header)

// ReadOutcome is the result of scanning a term starting at some offset.
type ReadOutcome struct {
	// Offset is the term offset just past the last frame read, i.e. where
	// the next read should resume.
	Offset int32
	// FragmentsRead is how many data frames were delivered to the handler.
	FragmentsRead int
}

// Read scans termBuffer starting at termOffset, delivering up to
// fragmentLimit data frames to handler, and stops at the first of: the
// fragment limit, an unpublished frame (acquire-ordered frame length not
// yet visible), or the end of the term. Padding frames are skipped without
// being handed to the caller.
//
// Because the frame length field is read with acquire ordering, reaching
// a complete frame here guarantees every byte of its body, written by the
// producer before its release-ordered publish of that length, is visible.
func Read(termBuffer *atomic.Buffer, termOffset int32, handler FragmentHandler, fragmentLimit int, header *logbuffer.Header) ReadOutcome {
	fragmentsRead := 0
	offset := termOffset
	capacity := termBuffer.Capacity()

	for fragmentsRead < fragmentLimit && offset < capacity {
		frameLength := logbuffer.FrameLengthVolatile(termBuffer, offset)
		if frameLength <= 0 {
			break
		}

		frameOffset := offset
		alignedLength := logbuffer.AlignedFrameLength(0, frameLength)
		offset += alignedLength

		if logbuffer.FrameType(termBuffer, frameOffset) == logbuffer.DataFrameHeader.TypePad {
			continue
		}

		header.Wrap(termBuffer, frameOffset)
		fragmentsRead++
		handler(termBuffer, frameOffset+logbuffer.DataFrameHeader.Length,
			frameLength-logbuffer.DataFrameHeader.Length, header)
	}

	return ReadOutcome{Offset: offset, FragmentsRead: fragmentsRead}
}

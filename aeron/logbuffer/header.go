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

import "github.com/skehrli/aeron-logbuffer/aeron/atomic"

// Header is a reusable, rewrapped-per-fragment view over the header of
// whatever frame a reader is currently looking at, plus the two constants
// (initialTermID, positionBitsToShift) needed to turn a frame's term
// offset back into an absolute stream position.
type Header struct {
	buffer              atomic.Buffer
	offset              int32
	initialTermID       int32
	positionBitsToShift uint8
}

// InitialTermID returns the log buffer's fixed initial term id.
func (h *Header) InitialTermID() int32 { return h.initialTermID }

// SetInitialTermID sets the log buffer's fixed initial term id.
func (h *Header) SetInitialTermID(v int32) { h.initialTermID = v }

// PositionBitsToShift returns the shift derived from the term length.
func (h *Header) PositionBitsToShift() uint8 { return h.positionBitsToShift }

// SetPositionBitsToShift sets the shift derived from the term length.
func (h *Header) SetPositionBitsToShift(v uint8) { h.positionBitsToShift = v }

// Wrap points the header at the frame starting at offset within
// termBuffer, ready to read that frame's fields.
func (h *Header) Wrap(termBuffer *atomic.Buffer, offset int32) {
	h.buffer.Wrap(termBuffer.Ptr(), termBuffer.Capacity())
	h.offset = offset
}

// Offset returns the byte offset of the current frame within its term.
func (h *Header) Offset() int32 { return h.offset }

// FrameLength performs an acquire-ordered read of the current frame's
// length field.
func (h *Header) FrameLength() int32 {
	return FrameLengthVolatile(&h.buffer, h.offset)
}

// Flags returns the current frame's flags byte.
func (h *Header) Flags() uint8 {
	return h.buffer.GetUInt8(h.offset + DataFrameHeader.FlagsFieldOffset)
}

// Type returns the current frame's type field.
func (h *Header) Type() uint16 {
	return FrameType(&h.buffer, h.offset)
}

// TermOffset returns the byte offset of the current frame within its term.
func (h *Header) TermOffset() int32 {
	return h.buffer.GetInt32(h.offset + DataFrameHeader.TermOffsetFieldOffset)
}

// SessionID returns the current frame's session id.
func (h *Header) SessionID() int32 {
	return h.buffer.GetInt32(h.offset + DataFrameHeader.SessionIDFieldOffset)
}

// StreamID returns the current frame's stream id.
func (h *Header) StreamID() int32 {
	return h.buffer.GetInt32(h.offset + DataFrameHeader.StreamIDFieldOffset)
}

// TermID returns the current frame's term id.
func (h *Header) TermID() int32 {
	return h.buffer.GetInt32(h.offset + DataFrameHeader.TermIDFieldOffset)
}

// ReservedValue returns the current frame's user-supplied reserved value.
func (h *Header) ReservedValue() int64 {
	return h.buffer.GetInt64(h.offset + DataFrameHeader.ReservedValueFieldOffset)
}

// Position returns the absolute stream position of the end of the current
// frame: the position consumers should report once they have fully
// processed it.
func (h *Header) Position() int64 {
	termID := h.TermID()
	resultingOffset := AlignedFrameLength(h.TermOffset(), h.FrameLength())
	return ComputePosition(termID, resultingOffset, h.positionBitsToShift, h.initialTermID)
}

// AlignedFrameLength returns termOffset advanced by frameLength rounded up
// to the frame alignment, i.e. the offset of the next frame.
func AlignedFrameLength(termOffset int32, frameLength int32) int32 {
	return termOffset + alignFrame(frameLength)
}

func alignFrame(length int32) int32 {
	return (length + (FrameAlignment - 1)) &^ (FrameAlignment - 1)
}

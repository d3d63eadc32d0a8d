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

// FrameLengthOrdered publishes the frame length at offset with release
// ordering. A consumer spinning on this field with acquire ordering is
// then guaranteed to see every byte of the frame body written before it.
func FrameLengthOrdered(buffer *atomic.Buffer, offset int32, frameLength int32) {
	buffer.PutInt32Ordered(offset+DataFrameHeader.FrameLengthFieldOffset, frameLength)
}

// FrameLengthVolatile reads the frame length at offset with acquire
// ordering.
func FrameLengthVolatile(buffer *atomic.Buffer, offset int32) int32 {
	return buffer.GetInt32Volatile(offset + DataFrameHeader.FrameLengthFieldOffset)
}

// FrameFlags sets the flags byte of the frame at offset.
func FrameFlags(buffer *atomic.Buffer, offset int32, flags uint8) {
	buffer.PutUInt8(offset+DataFrameHeader.FlagsFieldOffset, flags)
}

// FrameType returns the type field of the frame at offset.
func FrameType(buffer *atomic.Buffer, offset int32) uint16 {
	return buffer.GetUInt16(offset + DataFrameHeader.TypeFieldOffset)
}

// SetFrameType sets the type field of the frame at offset.
func SetFrameType(buffer *atomic.Buffer, offset int32, frameType uint16) {
	buffer.PutUInt16(offset+DataFrameHeader.TypeFieldOffset, frameType)
}

// Claim is a zero-copy handle onto a reserved region of a term, used by
// producers that want to write a message's payload directly into the log
// buffer rather than copying it in from a source buffer.
type Claim struct {
	buffer      atomic.Buffer
	offset      int32
	frameLength int32
}

// Wrap points the claim at the frame starting at offset within termBuffer.
func (c *Claim) Wrap(termBuffer *atomic.Buffer, offset int32, frameLength int32) {
	c.buffer.Wrap(termBuffer.Ptr(), termBuffer.Capacity())
	c.offset = offset
	c.frameLength = frameLength
}

// Buffer returns the underlying term buffer the claim was wrapped over.
func (c *Claim) Buffer() *atomic.Buffer { return &c.buffer }

// Offset returns the byte offset of the claimed frame's header.
func (c *Claim) Offset() int32 { return c.offset }

// Length returns the total frame length, header included.
func (c *Claim) Length() int32 { return c.frameLength }

// DataOffset returns the byte offset of the claimed frame's payload.
func (c *Claim) DataOffset() int32 { return c.offset + DataFrameHeader.Length }

// DataLength returns the number of payload bytes available in the claim.
func (c *Claim) DataLength() int32 { return c.frameLength - DataFrameHeader.Length }

// Commit publishes the frame by writing its length with release ordering,
// making it visible to consumers.
func (c *Claim) Commit() {
	FrameLengthOrdered(&c.buffer, c.offset, c.frameLength)
}

// Abort marks the claimed frame as padding, so consumers skip over it
// without ever seeing a partially written message.
func (c *Claim) Abort() {
	SetFrameType(&c.buffer, c.offset, DataFrameHeader.TypePad)
	FrameLengthOrdered(&c.buffer, c.offset, c.frameLength)
}

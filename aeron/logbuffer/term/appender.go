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

// Package term implements the producer (Appender) and consumer (Reader)
// sides of a single term partition: claiming space via the raw tail
// counter, writing frame headers and payload, and crossing from one term
// to the next via the rotation protocol in rotator.go.
package term

import (
	"math"

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
	"github.com/skehrli/aeron-logbuffer/aeron/logbuffer"
	"github.com/skehrli/aeron-logbuffer/aeron/util"
)

const (
	// AppenderTripped is returned when the end of the term has been
	// reached and the remainder was padded.
	AppenderTripped int64 = -1

	// AppenderFailed is returned when appending is not possible because
	// the claimed position already lies outside the term.
	AppenderFailed int64 = -2

	beginFrag    uint8 = 0x80
	endFrag      uint8 = 0x40
	unfragmented uint8 = 0x80 | 0x40
)

// DefaultReservedValueSupplier is the default reserved value provider: it
// always supplies zero.
var DefaultReservedValueSupplier ReservedValueSupplier = func(termBuffer *atomic.Buffer, termOffset int32, length int32) int64 { return 0 }

// ReservedValueSupplier supplies the user-defined reserved value stored in
// a frame's header once its position and content are known.
type ReservedValueSupplier func(termBuffer *atomic.Buffer, termOffset int32, length int32) int64

// headerWriter takes the session and stream ids from the prototype frame
// header and writes every header field of a frame except the reserved
// value. The prototype's bytes themselves are not copied into the term.
type headerWriter struct {
	sessionID int32
	streamID  int32
}

func (header *headerWriter) fill(defaultHdr *atomic.Buffer) {
	header.sessionID = defaultHdr.GetInt32(logbuffer.DataFrameHeader.SessionIDFieldOffset)
	header.streamID = defaultHdr.GetInt32(logbuffer.DataFrameHeader.StreamIDFieldOffset)
}

func (header *headerWriter) write(termBuffer *atomic.Buffer, offset, length, termID int32) {
	termBuffer.PutInt32Ordered(offset, -length)

	termBuffer.PutInt8(offset+logbuffer.DataFrameHeader.VersionFieldOffset, int8(logbuffer.DataFrameHeader.CurrentVersion))
	termBuffer.PutUInt8(offset+logbuffer.DataFrameHeader.FlagsFieldOffset, unfragmented)
	termBuffer.PutUInt16(offset+logbuffer.DataFrameHeader.TypeFieldOffset, logbuffer.DataFrameHeader.TypeData)
	termBuffer.PutInt32(offset+logbuffer.DataFrameHeader.TermOffsetFieldOffset, offset)
	termBuffer.PutInt32(offset+logbuffer.DataFrameHeader.SessionIDFieldOffset, header.sessionID)
	termBuffer.PutInt32(offset+logbuffer.DataFrameHeader.StreamIDFieldOffset, header.streamID)
	termBuffer.PutInt32(offset+logbuffer.DataFrameHeader.TermIDFieldOffset, termID)
}

// Appender is the producer-side writer for a single term partition.
type Appender struct {
	termBuffer     *atomic.Buffer
	metaData       *logbuffer.LogMetaDataFlyweight
	partitionIndex int32
	headerWriter   headerWriter
}

// AppenderResult is a zero-allocation pair return for the position an
// append landed at.
type AppenderResult struct {
	termOffset int64
	termID     int32
}

// TermOffset returns the resulting term offset, or one of
// AppenderTripped/AppenderFailed.
func (result *AppenderResult) TermOffset() int64 { return result.termOffset }

// TermID returns the term id the append was made against.
func (result *AppenderResult) TermID() int32 { return result.termID }

// MakeAppender builds an Appender bound to one partition of logBuffers.
func MakeAppender(logBuffers *logbuffer.LogBuffers, partitionIndex int) *Appender {
	appender := new(Appender)
	appender.termBuffer = logBuffers.Buffer(partitionIndex)
	appender.metaData = logBuffers.Meta()
	appender.partitionIndex = int32(partitionIndex)

	header := logBuffers.Meta().DefaultFrameHeader()
	appender.headerWriter.fill(header)

	return appender
}

// RawTail returns the plain value of this partition's raw tail counter.
func (appender *Appender) RawTail() int64 {
	return appender.metaData.RawTail(appender.partitionIndex)
}

func (appender *Appender) getAndAddRawTail(alignedLength int32) int64 {
	return appender.metaData.GetAndAddRawTail(appender.partitionIndex, int64(alignedLength))
}

// Claim reserves a frame-sized region for a zero-copy send: the caller
// writes payload directly into claim's buffer and calls claim.Commit (or
// claim.Abort) when done.
func (appender *Appender) Claim(result *AppenderResult, length int32, claim *logbuffer.Claim) {
	frameLength := length + logbuffer.DataFrameHeader.Length
	alignedLength := util.AlignInt32(frameLength, logbuffer.FrameAlignment)
	rawTail := appender.getAndAddRawTail(alignedLength)
	termOffset := rawTail & 0xFFFFFFFF

	termLength := appender.termBuffer.Capacity()

	result.termID = logbuffer.TermID(rawTail)
	result.termOffset = termOffset + int64(alignedLength)
	if result.termOffset > int64(termLength) {
		result.termOffset = appender.handleEndOfLogCondition(result.termID, int32(termOffset), termLength)
	} else {
		offset := int32(termOffset)
		appender.headerWriter.write(appender.termBuffer, offset, frameLength, result.termID)
		claim.Wrap(appender.termBuffer, offset, frameLength)
	}
}

// AppendUnfragmentedMessage appends a message that fits in a single frame.
func (appender *Appender) AppendUnfragmentedMessage(result *AppenderResult,
	srcBuffer *atomic.Buffer, srcOffset int32, length int32, reservedValueSupplier ReservedValueSupplier) {

	frameLength := length + logbuffer.DataFrameHeader.Length
	alignedLength := util.AlignInt32(frameLength, logbuffer.FrameAlignment)
	rawTail := appender.getAndAddRawTail(alignedLength)
	termOffset := rawTail & 0xFFFFFFFF

	termLength := appender.termBuffer.Capacity()

	result.termID = logbuffer.TermID(rawTail)
	result.termOffset = termOffset + int64(alignedLength)
	if result.termOffset > int64(termLength) {
		result.termOffset = appender.handleEndOfLogCondition(result.termID, int32(termOffset), termLength)
	} else {
		offset := int32(termOffset)
		appender.headerWriter.write(appender.termBuffer, offset, frameLength, result.termID)
		appender.termBuffer.PutBytes(offset+logbuffer.DataFrameHeader.Length, srcBuffer, srcOffset, length)

		if nil != reservedValueSupplier {
			reservedValue := reservedValueSupplier(appender.termBuffer, offset, frameLength)
			appender.termBuffer.PutInt64(offset+logbuffer.DataFrameHeader.ReservedValueFieldOffset, reservedValue)
		}

		logbuffer.FrameLengthOrdered(appender.termBuffer, offset, frameLength)
	}
}

// AppendFragmentedMessage appends a message larger than maxPayloadLength
// as a batch of fragments, each a separate frame.
func (appender *Appender) AppendFragmentedMessage(result *AppenderResult,
	srcBuffer *atomic.Buffer, srcOffset int32, length int32, maxPayloadLength int32, reservedValueSupplier ReservedValueSupplier) {

	numMaxPayloads := length / maxPayloadLength
	remainingPayload := length % maxPayloadLength
	var lastFrameLength int32
	if remainingPayload > 0 {
		lastFrameLength = util.AlignInt32(remainingPayload+logbuffer.DataFrameHeader.Length, logbuffer.FrameAlignment)
	}
	requiredLength := (numMaxPayloads * (maxPayloadLength + logbuffer.DataFrameHeader.Length)) + lastFrameLength
	rawTail := appender.getAndAddRawTail(requiredLength)
	termOffset := rawTail & 0xFFFFFFFF

	termLength := appender.termBuffer.Capacity()

	result.termID = logbuffer.TermID(rawTail)
	result.termOffset = termOffset + int64(requiredLength)
	if result.termOffset > int64(termLength) {
		result.termOffset = appender.handleEndOfLogCondition(result.termID, int32(termOffset), termLength)
	} else {
		flags := beginFrag
		remaining := length
		offset := int32(termOffset)

		for remaining > 0 {
			bytesToWrite := int32(math.Min(float64(remaining), float64(maxPayloadLength)))
			frameLength := bytesToWrite + logbuffer.DataFrameHeader.Length
			alignedLength := util.AlignInt32(frameLength, logbuffer.FrameAlignment)

			appender.headerWriter.write(appender.termBuffer, offset, frameLength, result.termID)
			appender.termBuffer.PutBytes(
				offset+logbuffer.DataFrameHeader.Length, srcBuffer, srcOffset+(length-remaining), bytesToWrite)

			if remaining <= maxPayloadLength {
				flags |= endFrag
			}

			logbuffer.FrameFlags(appender.termBuffer, offset, flags)

			reservedValue := reservedValueSupplier(appender.termBuffer, offset, frameLength)
			appender.termBuffer.PutInt64(offset+logbuffer.DataFrameHeader.ReservedValueFieldOffset, reservedValue)

			logbuffer.FrameLengthOrdered(appender.termBuffer, offset, frameLength)

			flags = 0
			offset += alignedLength
			remaining -= bytesToWrite
		}
	}
}

// handleEndOfLogCondition pads the remainder of the term (if any) and
// reports AppenderTripped, or AppenderFailed if termOffset already lay
// beyond the term. It does not itself perform the term rotation; the
// caller (or any other actor) does that separately via RotateLog once it
// observes the tripped term.
func (appender *Appender) handleEndOfLogCondition(termID int32, termOffset int32, termLength int32) int64 {
	newOffset := AppenderFailed

	if termOffset <= termLength {
		newOffset = AppenderTripped

		if termOffset < termLength {
			paddingLength := termLength - termOffset
			appender.headerWriter.write(appender.termBuffer, termOffset, paddingLength, termID)
			logbuffer.SetFrameType(appender.termBuffer, termOffset, logbuffer.DataFrameHeader.TypePad)
			logbuffer.FrameLengthOrdered(appender.termBuffer, termOffset, paddingLength)
		}
	}

	return newOffset
}

// SetTailTermID primes this partition's raw tail with termID at offset 0,
// used when initialising or re-arming a partition ahead of rotation.
func (appender *Appender) SetTailTermID(termID int32) {
	appender.metaData.SetRawTail(appender.partitionIndex, int64(termID)<<32)
}

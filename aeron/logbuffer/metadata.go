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
	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
	"github.com/skehrli/aeron-logbuffer/aeron/flyweight"
)

// Metadata field offsets, byte offsets from the start of the metadata
// section. Gaps between offsets are deliberate cache-line padding and must
// be preserved bit-exactly: other processes, possibly other language
// implementations, map the same file.
const (
	TailCounterOffset     int32 = 0 // 3 x int64, at 0, 8, 16
	ActiveTermCountOffset int32 = 24

	EndOfStreamPositionOffset  int32 = 128
	IsConnectedOffset          int32 = 136
	ActiveTransportCountOffset int32 = 140

	CorrelationIDOffset               int32 = 256
	InitialTermIDOffset               int32 = 264
	DefaultFrameHeaderLengthOffset    int32 = 268
	MTULengthOffset                   int32 = 272
	TermLengthOffset                  int32 = 276
	PageSizeOffset                    int32 = 280
	PublicationWindowLengthOffset     int32 = 284
	ReceiverWindowLengthOffset        int32 = 288
	SocketSndbufLengthOffset          int32 = 292
	OSDefaultSocketSndbufLengthOffset int32 = 296
	OSMaxSocketSndbufLengthOffset     int32 = 300
	SocketRcvbufLengthOffset          int32 = 304
	OSDefaultSocketRcvbufLengthOffset int32 = 308
	OSMaxSocketRcvbufLengthOffset     int32 = 312
	MaxResendOffset                   int32 = 316

	DefaultFrameHeaderOffset int32 = 320 // 128 bytes reserved

	EntityTagOffset                      int32 = 448
	ResponseCorrelationIDOffset          int32 = 456
	LingerTimeoutNsOffset                int32 = 464
	UntetheredWindowLimitTimeoutNsOffset int32 = 472
	UntetheredRestingTimeoutNsOffset     int32 = 480

	GroupOffset                  int32 = 488
	IsResponseOffset             int32 = 489
	RejoinOffset                 int32 = 490
	ReliableOffset               int32 = 491
	SparseOffset                 int32 = 492
	SignalEOSOffset              int32 = 493
	SpiesSimulateConnectionOffset int32 = 494
	TetherOffset                 int32 = 495
	IsPublicationRevokedOffset   int32 = 496

	UntetheredLingerTimeoutNsOffset int32 = 500
)

// DefaultFrameHeaderMaxLength is the size of the reserved prototype-header
// region; only the first DataFrameHeader.Length bytes of it are meaningful.
const DefaultFrameHeaderMaxLength int32 = 128

// LogMetaDataFlyweight is a typed, atomically-ordered view over the
// MetaDataLength-byte metadata section of a log buffer. Every accessor
// here implements the concurrency contract of the core: release stores on
// the producer side pair with acquire loads on the reader side, CAS where
// more than one actor may race, and plain accesses for the configuration
// scalars that are written once before the buffer is published.
type LogMetaDataFlyweight struct {
	buffer atomic.Buffer

	tailCounter [PartitionCount]flyweight.Int64Field
	activeTermCount flyweight.Int32Field

	endOfStreamPosition  flyweight.Int64Field
	isConnected          flyweight.BoolField
	activeTransportCount flyweight.Int32Field

	correlationID            flyweight.Int64Field
	initialTermID            flyweight.Int32Field
	defaultFrameHeaderLength flyweight.Int32Field
	mtuLength                flyweight.Int32Field
	termLength               flyweight.Int32Field
	pageSize                 flyweight.Int32Field

	publicationWindowLength   flyweight.Int32Field
	receiverWindowLength      flyweight.Int32Field
	socketSndbufLength        flyweight.Int32Field
	osDefaultSocketSndbufLength flyweight.Int32Field
	osMaxSocketSndbufLength     flyweight.Int32Field
	socketRcvbufLength          flyweight.Int32Field
	osDefaultSocketRcvbufLength flyweight.Int32Field
	osMaxSocketRcvbufLength     flyweight.Int32Field
	maxResend                   flyweight.Int32Field

	defaultFrameHeader flyweight.BytesField

	entityTag                      flyweight.Int64Field
	responseCorrelationID          flyweight.Int64Field
	lingerTimeoutNs                flyweight.Int64Field
	untetheredWindowLimitTimeoutNs flyweight.Int64Field
	untetheredRestingTimeoutNs     flyweight.Int64Field
	untetheredLingerTimeoutNs      flyweight.Int64Field

	group                   flyweight.BoolField
	isResponse              flyweight.BoolField
	rejoin                  flyweight.BoolField
	reliable                flyweight.BoolField
	sparse                  flyweight.BoolField
	signalEOS               flyweight.BoolField
	spiesSimulateConnection flyweight.BoolField
	tether                  flyweight.BoolField
	isPublicationRevoked    flyweight.BoolField
}

// WrapLogMetaData binds a LogMetaDataFlyweight to the metadata section held
// in buf, which must be at least MetaDataLength bytes.
func WrapLogMetaData(buf []byte) (*LogMetaDataFlyweight, error) {
	if int32(len(buf)) < MetaDataLength {
		return nil, ErrOutOfRange
	}

	m := new(LogMetaDataFlyweight)
	m.buffer.WrapSlice(buf)
	b := &m.buffer

	for i := 0; i < PartitionCount; i++ {
		m.tailCounter[i] = flyweight.NewInt64Field(b, TailCounterOffset+int32(i)*8)
	}
	m.activeTermCount = flyweight.NewInt32Field(b, ActiveTermCountOffset)

	m.endOfStreamPosition = flyweight.NewInt64Field(b, EndOfStreamPositionOffset)
	m.isConnected = flyweight.NewBoolField(b, IsConnectedOffset)
	m.activeTransportCount = flyweight.NewInt32Field(b, ActiveTransportCountOffset)

	m.correlationID = flyweight.NewInt64Field(b, CorrelationIDOffset)
	m.initialTermID = flyweight.NewInt32Field(b, InitialTermIDOffset)
	m.defaultFrameHeaderLength = flyweight.NewInt32Field(b, DefaultFrameHeaderLengthOffset)
	m.mtuLength = flyweight.NewInt32Field(b, MTULengthOffset)
	m.termLength = flyweight.NewInt32Field(b, TermLengthOffset)
	m.pageSize = flyweight.NewInt32Field(b, PageSizeOffset)

	m.publicationWindowLength = flyweight.NewInt32Field(b, PublicationWindowLengthOffset)
	m.receiverWindowLength = flyweight.NewInt32Field(b, ReceiverWindowLengthOffset)
	m.socketSndbufLength = flyweight.NewInt32Field(b, SocketSndbufLengthOffset)
	m.osDefaultSocketSndbufLength = flyweight.NewInt32Field(b, OSDefaultSocketSndbufLengthOffset)
	m.osMaxSocketSndbufLength = flyweight.NewInt32Field(b, OSMaxSocketSndbufLengthOffset)
	m.socketRcvbufLength = flyweight.NewInt32Field(b, SocketRcvbufLengthOffset)
	m.osDefaultSocketRcvbufLength = flyweight.NewInt32Field(b, OSDefaultSocketRcvbufLengthOffset)
	m.osMaxSocketRcvbufLength = flyweight.NewInt32Field(b, OSMaxSocketRcvbufLengthOffset)
	m.maxResend = flyweight.NewInt32Field(b, MaxResendOffset)

	m.defaultFrameHeader = flyweight.NewBytesField(b, DefaultFrameHeaderOffset, DefaultFrameHeaderMaxLength)

	m.entityTag = flyweight.NewInt64Field(b, EntityTagOffset)
	m.responseCorrelationID = flyweight.NewInt64Field(b, ResponseCorrelationIDOffset)
	m.lingerTimeoutNs = flyweight.NewInt64Field(b, LingerTimeoutNsOffset)
	m.untetheredWindowLimitTimeoutNs = flyweight.NewInt64Field(b, UntetheredWindowLimitTimeoutNsOffset)
	m.untetheredRestingTimeoutNs = flyweight.NewInt64Field(b, UntetheredRestingTimeoutNsOffset)
	m.untetheredLingerTimeoutNs = flyweight.NewInt64Field(b, UntetheredLingerTimeoutNsOffset)

	m.group = flyweight.NewBoolField(b, GroupOffset)
	m.isResponse = flyweight.NewBoolField(b, IsResponseOffset)
	m.rejoin = flyweight.NewBoolField(b, RejoinOffset)
	m.reliable = flyweight.NewBoolField(b, ReliableOffset)
	m.sparse = flyweight.NewBoolField(b, SparseOffset)
	m.signalEOS = flyweight.NewBoolField(b, SignalEOSOffset)
	m.spiesSimulateConnection = flyweight.NewBoolField(b, SpiesSimulateConnectionOffset)
	m.tether = flyweight.NewBoolField(b, TetherOffset)
	m.isPublicationRevoked = flyweight.NewBoolField(b, IsPublicationRevokedOffset)

	return m, nil
}

// --- raw tail ---

// RawTail performs a plain read of partition p's raw tail counter.
func (m *LogMetaDataFlyweight) RawTail(p int32) int64 { return m.tailCounter[p].Get() }

// RawTailVolatile performs an acquire-ordered read of partition p's raw
// tail counter.
func (m *LogMetaDataFlyweight) RawTailVolatile(p int32) int64 { return m.tailCounter[p].GetVolatile() }

// RawTailVolatileActive reads activeTermCount with acquire ordering, derives
// the active partition index, and performs the acquire-ordered read of that
// partition's raw tail. Between the two reads a producer may rotate, so
// the caller may observe a stale (partition, tail) pair, but never a torn
// one.
func (m *LogMetaDataFlyweight) RawTailVolatileActive() int64 {
	activeTermCount := m.ActiveTermCountVolatile()
	p := IndexByTermCount(int64(activeTermCount))
	return m.RawTailVolatile(p)
}

// SetRawTail performs a plain write to partition p's raw tail counter, used
// to pad the remainder of a term.
func (m *LogMetaDataFlyweight) SetRawTail(p int32, value int64) { m.tailCounter[p].Set(value) }

// SetRawTailOrdered performs a release-ordered write, publishing the new
// tail to any acquire-ordered reader.
func (m *LogMetaDataFlyweight) SetRawTailOrdered(p int32, value int64) {
	m.tailCounter[p].SetOrdered(value)
}

// CasRawTail performs an acquire-release CAS on partition p's raw tail
// counter.
func (m *LogMetaDataFlyweight) CasRawTail(p int32, expected, update int64) bool {
	return m.tailCounter[p].CompareAndSet(expected, update)
}

// GetAndAddRawTail atomically adds delta to partition p's raw tail counter
// and returns its value prior to the add. This is how a producer claims
// space: the returned value's low 32 bits are the term offset it may write
// at, and the add itself publishes the new tail with the same ordering a
// release store would.
func (m *LogMetaDataFlyweight) GetAndAddRawTail(p int32, delta int64) int64 {
	return m.tailCounter[p].GetAndAddInt64(delta)
}

// --- active term count ---

// ActiveTermCount performs a plain read.
func (m *LogMetaDataFlyweight) ActiveTermCount() int32 { return m.activeTermCount.Get() }

// ActiveTermCountVolatile performs an acquire-ordered read.
func (m *LogMetaDataFlyweight) ActiveTermCountVolatile() int32 { return m.activeTermCount.GetVolatile() }

// SetActiveTermCount performs a plain write, used only at initialisation.
func (m *LogMetaDataFlyweight) SetActiveTermCount(value int32) { m.activeTermCount.Set(value) }

// SetActiveTermCountOrdered performs a release-ordered write.
func (m *LogMetaDataFlyweight) SetActiveTermCountOrdered(value int32) {
	m.activeTermCount.SetOrdered(value)
}

// CasActiveTermCount performs an acquire-release CAS, the synchronising step
// of the term rotator's activeTermCount handoff.
func (m *LogMetaDataFlyweight) CasActiveTermCount(expected, update int32) bool {
	return m.activeTermCount.CompareAndSet(expected, update)
}

// --- connection / transport state ---

// IsConnected performs a plain read.
func (m *LogMetaDataFlyweight) IsConnected() bool { return m.isConnected.Get() }

// IsConnectedVolatile performs an acquire-ordered read.
func (m *LogMetaDataFlyweight) IsConnectedVolatile() bool { return m.isConnected.GetVolatile() }

// SetIsConnectedOrdered performs a release-ordered write.
func (m *LogMetaDataFlyweight) SetIsConnectedOrdered(value bool) { m.isConnected.SetOrdered(value) }

// ActiveTransportCount performs a plain read.
func (m *LogMetaDataFlyweight) ActiveTransportCount() int32 { return m.activeTransportCount.Get() }

// ActiveTransportCountVolatile performs an acquire-ordered read.
func (m *LogMetaDataFlyweight) ActiveTransportCountVolatile() int32 {
	return m.activeTransportCount.GetVolatile()
}

// SetActiveTransportCountOrdered performs a release-ordered write.
func (m *LogMetaDataFlyweight) SetActiveTransportCountOrdered(value int32) {
	m.activeTransportCount.SetOrdered(value)
}

// EndOfStreamPosition performs a plain read.
func (m *LogMetaDataFlyweight) EndOfStreamPosition() int64 { return m.endOfStreamPosition.Get() }

// EndOfStreamPositionVolatile performs an acquire-ordered read.
func (m *LogMetaDataFlyweight) EndOfStreamPositionVolatile() int64 {
	return m.endOfStreamPosition.GetVolatile()
}

// SetEndOfStreamPositionOrdered performs a release-ordered write.
func (m *LogMetaDataFlyweight) SetEndOfStreamPositionOrdered(value int64) {
	m.endOfStreamPosition.SetOrdered(value)
}

// --- configuration scalars, written once before publish, read plain ---

func (m *LogMetaDataFlyweight) CorrelationID() int64        { return m.correlationID.Get() }
func (m *LogMetaDataFlyweight) SetCorrelationID(v int64)     { m.correlationID.Set(v) }
func (m *LogMetaDataFlyweight) InitialTermID() int32         { return m.initialTermID.Get() }
func (m *LogMetaDataFlyweight) SetInitialTermID(v int32)     { m.initialTermID.Set(v) }
func (m *LogMetaDataFlyweight) DefaultFrameHeaderLength() int32 {
	return m.defaultFrameHeaderLength.Get()
}
func (m *LogMetaDataFlyweight) SetDefaultFrameHeaderLength(v int32) {
	m.defaultFrameHeaderLength.Set(v)
}
func (m *LogMetaDataFlyweight) MTULength() int32     { return m.mtuLength.Get() }
func (m *LogMetaDataFlyweight) SetMTULength(v int32) { m.mtuLength.Set(v) }
func (m *LogMetaDataFlyweight) TermLength() int32     { return m.termLength.Get() }
func (m *LogMetaDataFlyweight) SetTermLength(v int32) { m.termLength.Set(v) }
func (m *LogMetaDataFlyweight) PageSize() int32     { return m.pageSize.Get() }
func (m *LogMetaDataFlyweight) SetPageSize(v int32) { m.pageSize.Set(v) }

func (m *LogMetaDataFlyweight) PublicationWindowLength() int32 {
	return m.publicationWindowLength.Get()
}
func (m *LogMetaDataFlyweight) SetPublicationWindowLength(v int32) {
	m.publicationWindowLength.Set(v)
}
func (m *LogMetaDataFlyweight) ReceiverWindowLength() int32 { return m.receiverWindowLength.Get() }
func (m *LogMetaDataFlyweight) SetReceiverWindowLength(v int32) {
	m.receiverWindowLength.Set(v)
}
func (m *LogMetaDataFlyweight) SocketSndbufLength() int32 { return m.socketSndbufLength.Get() }
func (m *LogMetaDataFlyweight) SetSocketSndbufLength(v int32) {
	m.socketSndbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) OSDefaultSocketSndbufLength() int32 {
	return m.osDefaultSocketSndbufLength.Get()
}
func (m *LogMetaDataFlyweight) SetOSDefaultSocketSndbufLength(v int32) {
	m.osDefaultSocketSndbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) OSMaxSocketSndbufLength() int32 {
	return m.osMaxSocketSndbufLength.Get()
}
func (m *LogMetaDataFlyweight) SetOSMaxSocketSndbufLength(v int32) {
	m.osMaxSocketSndbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) SocketRcvbufLength() int32 { return m.socketRcvbufLength.Get() }
func (m *LogMetaDataFlyweight) SetSocketRcvbufLength(v int32) {
	m.socketRcvbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) OSDefaultSocketRcvbufLength() int32 {
	return m.osDefaultSocketRcvbufLength.Get()
}
func (m *LogMetaDataFlyweight) SetOSDefaultSocketRcvbufLength(v int32) {
	m.osDefaultSocketRcvbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) OSMaxSocketRcvbufLength() int32 {
	return m.osMaxSocketRcvbufLength.Get()
}
func (m *LogMetaDataFlyweight) SetOSMaxSocketRcvbufLength(v int32) {
	m.osMaxSocketRcvbufLength.Set(v)
}
func (m *LogMetaDataFlyweight) MaxResend() int32     { return m.maxResend.Get() }
func (m *LogMetaDataFlyweight) SetMaxResend(v int32) { m.maxResend.Set(v) }

func (m *LogMetaDataFlyweight) EntityTag() int64             { return m.entityTag.Get() }
func (m *LogMetaDataFlyweight) SetEntityTag(v int64)         { m.entityTag.Set(v) }
func (m *LogMetaDataFlyweight) ResponseCorrelationID() int64 { return m.responseCorrelationID.Get() }
func (m *LogMetaDataFlyweight) SetResponseCorrelationID(v int64) {
	m.responseCorrelationID.Set(v)
}
func (m *LogMetaDataFlyweight) LingerTimeoutNs() int64     { return m.lingerTimeoutNs.Get() }
func (m *LogMetaDataFlyweight) SetLingerTimeoutNs(v int64) { m.lingerTimeoutNs.Set(v) }
func (m *LogMetaDataFlyweight) UntetheredWindowLimitTimeoutNs() int64 {
	return m.untetheredWindowLimitTimeoutNs.Get()
}
func (m *LogMetaDataFlyweight) SetUntetheredWindowLimitTimeoutNs(v int64) {
	m.untetheredWindowLimitTimeoutNs.Set(v)
}
func (m *LogMetaDataFlyweight) UntetheredRestingTimeoutNs() int64 {
	return m.untetheredRestingTimeoutNs.Get()
}
func (m *LogMetaDataFlyweight) SetUntetheredRestingTimeoutNs(v int64) {
	m.untetheredRestingTimeoutNs.Set(v)
}
func (m *LogMetaDataFlyweight) UntetheredLingerTimeoutNs() int64 {
	return m.untetheredLingerTimeoutNs.Get()
}
func (m *LogMetaDataFlyweight) SetUntetheredLingerTimeoutNs(v int64) {
	m.untetheredLingerTimeoutNs.Set(v)
}

func (m *LogMetaDataFlyweight) Group() bool     { return m.group.Get() }
func (m *LogMetaDataFlyweight) SetGroup(v bool) { m.group.Set(v) }
func (m *LogMetaDataFlyweight) IsResponse() bool     { return m.isResponse.Get() }
func (m *LogMetaDataFlyweight) SetIsResponse(v bool) { m.isResponse.Set(v) }
func (m *LogMetaDataFlyweight) Rejoin() bool     { return m.rejoin.Get() }
func (m *LogMetaDataFlyweight) SetRejoin(v bool) { m.rejoin.Set(v) }
func (m *LogMetaDataFlyweight) Reliable() bool     { return m.reliable.Get() }
func (m *LogMetaDataFlyweight) SetReliable(v bool) { m.reliable.Set(v) }
func (m *LogMetaDataFlyweight) Sparse() bool     { return m.sparse.Get() }
func (m *LogMetaDataFlyweight) SetSparse(v bool) { m.sparse.Set(v) }
func (m *LogMetaDataFlyweight) SignalEOS() bool     { return m.signalEOS.Get() }
func (m *LogMetaDataFlyweight) SetSignalEOS(v bool) { m.signalEOS.Set(v) }
func (m *LogMetaDataFlyweight) SpiesSimulateConnection() bool {
	return m.spiesSimulateConnection.Get()
}
func (m *LogMetaDataFlyweight) SetSpiesSimulateConnection(v bool) {
	m.spiesSimulateConnection.Set(v)
}
func (m *LogMetaDataFlyweight) Tether() bool     { return m.tether.Get() }
func (m *LogMetaDataFlyweight) SetTether(v bool) { m.tether.Set(v) }

// IsPublicationRevoked performs a plain read.
func (m *LogMetaDataFlyweight) IsPublicationRevoked() bool { return m.isPublicationRevoked.Get() }

// SetIsPublicationRevokedOrdered performs a release-ordered write: unlike
// the other single-byte flags, revocation can happen after the buffer is
// published and so needs the ordering rather than a once-before-publish
// plain store.
func (m *LogMetaDataFlyweight) SetIsPublicationRevokedOrdered(v bool) {
	m.isPublicationRevoked.SetOrdered(v)
}

// --- default header store ---

// DefaultFrameHeader returns a Buffer view over the full 128-byte reserved
// region; only the first DataFrameHeader.Length bytes are meaningful.
func (m *LogMetaDataFlyweight) DefaultFrameHeader() *atomic.Buffer {
	return m.defaultFrameHeader.Get()
}

// SetDefaultFrameHeader stores the prototype frame header. header must be
// exactly DataFrameHeader.Length bytes; any other length is rejected.
func (m *LogMetaDataFlyweight) SetDefaultFrameHeader(header []byte) error {
	if err := checkHeaderLength(int32(len(header))); err != nil {
		return err
	}
	var src atomic.Buffer
	src.WrapSlice(header)
	m.buffer.PutBytes(DefaultFrameHeaderOffset, &src, 0, int32(len(header)))
	return nil
}

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

// Package logbuffer implements the wait-free, shared-memory log buffer
// that backs a unidirectional message stream between one producer and
// any number of consumers: three term partitions of identical length
// plus a fixed metadata section, the position arithmetic that maps an
// absolute stream position to (term id, term index, term offset), and
// the raw-tail-counter protocol producers use to rotate from one term
// to the next.
package logbuffer

import "errors"

const (
	// PartitionCount is the fixed number of term partitions in a log buffer.
	PartitionCount = 3

	// FrameAlignment is the byte alignment every frame start must satisfy.
	FrameAlignment = 32

	// TermMinLength is the smallest permitted term length, 64 KiB.
	TermMinLength int32 = 1 << 16

	// TermMaxLength is the largest permitted term length, 1 GiB.
	TermMaxLength int32 = 1 << 30

	// MetaDataLength is the fixed size of the metadata section, the
	// minimum page size.
	MetaDataLength int32 = 4096

	// PageMinSize is the smallest permitted page size, 4 KiB.
	PageMinSize int32 = 1 << 12

	// PageMaxSize is the largest permitted page size, 1 GiB.
	PageMaxSize int32 = 1 << 30
)

// Sentinel errors returned by the core. These are the only three error
// kinds the core emits; all other operations on correctly sized buffers
// are total.
var (
	// ErrInvalidLength indicates an invalid term length, page size, or
	// default header length.
	ErrInvalidLength = errors.New("logbuffer: invalid length")

	// ErrInvalidArgument indicates positionBitsToShift was called with a
	// term length that is not one of the permitted powers of two, or that
	// a partition's raw tail term id sits an illegal distance from the
	// active term (CheckPartitionGaps).
	ErrInvalidArgument = errors.New("logbuffer: invalid argument")

	// ErrOutOfRange indicates a caller passed a mis-sized buffer to a
	// metadata accessor or otherwise addressed outside a region's bounds.
	ErrOutOfRange = errors.New("logbuffer: out of range")
)

// DataFrameHeader describes the fixed layout of the 32-byte frame header
// that precedes every message (or message fragment) written to a term.
var DataFrameHeader = struct {
	// Length is the size in bytes of the frame header.
	Length int32

	FrameLengthFieldOffset   int32
	VersionFieldOffset       int32
	FlagsFieldOffset         int32
	TypeFieldOffset          int32
	TermOffsetFieldOffset    int32
	SessionIDFieldOffset     int32
	StreamIDFieldOffset      int32
	TermIDFieldOffset        int32
	ReservedValueFieldOffset int32

	CurrentVersion uint8

	TypePad  uint16
	TypeData uint16
}{
	Length: 32,

	FrameLengthFieldOffset:   0,
	VersionFieldOffset:       4,
	FlagsFieldOffset:         5,
	TypeFieldOffset:          6,
	TermOffsetFieldOffset:    8,
	SessionIDFieldOffset:     12,
	StreamIDFieldOffset:      16,
	TermIDFieldOffset:        20,
	ReservedValueFieldOffset: 24,

	CurrentVersion: 0,

	TypePad:  0,
	TypeData: 1,
}

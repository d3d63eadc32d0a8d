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

// Package flyweight binds a typed field to a fixed offset within an
// atomic.Buffer, so a struct can hold "a field" rather than "a buffer and
// an offset" everywhere it needs one. Flyweights are cheap value types;
// copying one just copies the (buffer pointer, offset) pair, not the data
// it points at.
package flyweight

import (
	"unsafe"

	"github.com/skehrli/aeron-logbuffer/aeron/atomic"
)

// Int64Field is a flyweight over a single 8-byte field.
type Int64Field struct {
	buffer *atomic.Buffer
	offset int32
}

// NewInt64Field binds a field to offset within buffer.
func NewInt64Field(buffer *atomic.Buffer, offset int32) Int64Field {
	return Int64Field{buffer: buffer, offset: offset}
}

// Get performs a plain read.
func (f Int64Field) Get() int64 { return f.buffer.GetInt64(f.offset) }

// Set performs a plain write.
func (f Int64Field) Set(value int64) { f.buffer.PutInt64(f.offset, value) }

// GetVolatile performs an acquire-ordered read.
func (f Int64Field) GetVolatile() int64 { return f.buffer.GetInt64Volatile(f.offset) }

// SetOrdered performs a release-ordered write.
func (f Int64Field) SetOrdered(value int64) { f.buffer.PutInt64Ordered(f.offset, value) }

// CompareAndSet performs an acquire-release CAS.
func (f Int64Field) CompareAndSet(expected, update int64) bool {
	return f.buffer.CompareAndSetInt64(f.offset, expected, update)
}

// GetAndAddInt64 atomically adds delta and returns the value prior to the add.
func (f Int64Field) GetAndAddInt64(delta int64) int64 {
	return f.buffer.GetAndAddInt64(f.offset, delta)
}

// Int32Field is a flyweight over a single 4-byte field.
type Int32Field struct {
	buffer *atomic.Buffer
	offset int32
}

// NewInt32Field binds a field to offset within buffer.
func NewInt32Field(buffer *atomic.Buffer, offset int32) Int32Field {
	return Int32Field{buffer: buffer, offset: offset}
}

// Get performs a plain read.
func (f Int32Field) Get() int32 { return f.buffer.GetInt32(f.offset) }

// Set performs a plain write.
func (f Int32Field) Set(value int32) { f.buffer.PutInt32(f.offset, value) }

// GetVolatile performs an acquire-ordered read.
func (f Int32Field) GetVolatile() int32 { return f.buffer.GetInt32Volatile(f.offset) }

// SetOrdered performs a release-ordered write.
func (f Int32Field) SetOrdered(value int32) { f.buffer.PutInt32Ordered(f.offset, value) }

// CompareAndSet performs an acquire-release CAS.
func (f Int32Field) CompareAndSet(expected, update int32) bool {
	return f.buffer.CompareAndSetInt32(f.offset, expected, update)
}

// BoolField stores a flag, 0 or 1, at offset. The plain accessors use a
// single byte; the ordered accessors use the 4-byte slot starting there.
type BoolField struct {
	buffer *atomic.Buffer
	offset int32
}

// NewBoolField binds a field to offset within buffer.
func NewBoolField(buffer *atomic.Buffer, offset int32) BoolField {
	return BoolField{buffer: buffer, offset: offset}
}

// Get performs a plain read.
func (f BoolField) Get() bool { return f.buffer.GetUInt8(f.offset) != 0 }

// Set performs a plain write.
func (f BoolField) Set(value bool) {
	var b uint8
	if value {
		b = 1
	}
	f.buffer.PutUInt8(f.offset, b)
}

// GetVolatile performs an acquire-ordered read. Booleans are stored in a
// 4-byte slot to keep their ordered accessor naturally aligned.
func (f BoolField) GetVolatile() bool { return f.buffer.GetInt32Volatile(f.offset) != 0 }

// SetOrdered performs a release-ordered write, see GetVolatile.
func (f BoolField) SetOrdered(value bool) {
	var v int32
	if value {
		v = 1
	}
	f.buffer.PutInt32Ordered(f.offset, v)
}

// BytesField is a flyweight over a fixed-size byte region.
type BytesField struct {
	buffer *atomic.Buffer
	offset int32
	length int32
}

// NewBytesField binds a fixed-size byte region to offset within buffer.
func NewBytesField(buffer *atomic.Buffer, offset, length int32) BytesField {
	return BytesField{buffer: buffer, offset: offset, length: length}
}

// Length returns the size of the region in bytes.
func (f BytesField) Length() int32 { return f.length }

// Get returns a Buffer view wrapping just this region.
func (f BytesField) Get() *atomic.Buffer {
	region := new(atomic.Buffer)
	ptr := unsafe.Pointer(uintptr(f.buffer.Ptr()) + uintptr(f.offset))
	region.Wrap(ptr, f.length)
	return region
}

// Put copies src (which must be exactly Length() bytes) into the region.
func (f BytesField) Put(src *atomic.Buffer) {
	f.buffer.PutBytes(f.offset, src, 0, f.length)
}

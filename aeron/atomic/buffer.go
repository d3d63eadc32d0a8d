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

// Package atomic wraps a raw memory region (typically a memory-mapped
// file) with typed, alignment-sensitive accessors. Plain accessors are
// unordered loads/stores; the "Ordered"/"Volatile" accessors map to
// release stores and acquire loads respectively, and the CompareAndSet
// family maps to acquire-release CAS. Every field a caller accesses
// through the ordered, volatile, CAS or get-and-add accessors must sit at
// a naturally aligned offset.
package atomic

import (
	"sync/atomic"
	"unsafe"
)

// Buffer is an unchecked, unsafe view over a region of memory. It does not
// own the memory it wraps; callers are responsible for keeping the backing
// storage alive for the lifetime of the Buffer.
type Buffer struct {
	ptr      unsafe.Pointer
	capacity int32
}

// Wrap points the Buffer at an arbitrary address with the given capacity.
func (b *Buffer) Wrap(ptr unsafe.Pointer, capacity int32) {
	b.ptr = ptr
	b.capacity = capacity
}

// WrapSlice points the Buffer at the backing array of a Go byte slice. The
// slice must outlive the Buffer.
func (b *Buffer) WrapSlice(buf []byte) {
	if len(buf) == 0 {
		b.ptr = nil
		b.capacity = 0
		return
	}
	b.ptr = unsafe.Pointer(&buf[0])
	b.capacity = int32(len(buf))
}

// Ptr returns the base address of the wrapped region.
func (b *Buffer) Ptr() unsafe.Pointer {
	return b.ptr
}

// Capacity returns the number of bytes in the wrapped region.
func (b *Buffer) Capacity() int32 {
	return b.capacity
}

func (b *Buffer) addr(offset int32) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b.ptr) + uintptr(offset))
}

// GetInt8 performs a plain, unordered read.
func (b *Buffer) GetInt8(offset int32) int8 {
	return *(*int8)(b.addr(offset))
}

// PutInt8 performs a plain, unordered write.
func (b *Buffer) PutInt8(offset int32, value int8) {
	*(*int8)(b.addr(offset)) = value
}

// GetUInt8 performs a plain, unordered read.
func (b *Buffer) GetUInt8(offset int32) uint8 {
	return *(*uint8)(b.addr(offset))
}

// PutUInt8 performs a plain, unordered write.
func (b *Buffer) PutUInt8(offset int32, value uint8) {
	*(*uint8)(b.addr(offset)) = value
}

// GetUInt16 performs a plain, unordered read.
func (b *Buffer) GetUInt16(offset int32) uint16 {
	return *(*uint16)(b.addr(offset))
}

// PutUInt16 performs a plain, unordered write.
func (b *Buffer) PutUInt16(offset int32, value uint16) {
	*(*uint16)(b.addr(offset)) = value
}

// GetInt32 performs a plain, unordered read.
func (b *Buffer) GetInt32(offset int32) int32 {
	return *(*int32)(b.addr(offset))
}

// PutInt32 performs a plain, unordered write.
func (b *Buffer) PutInt32(offset int32, value int32) {
	*(*int32)(b.addr(offset)) = value
}

// GetInt32Volatile performs an acquire-ordered read.
func (b *Buffer) GetInt32Volatile(offset int32) int32 {
	return atomic.LoadInt32((*int32)(b.addr(offset)))
}

// PutInt32Ordered performs a release-ordered write.
func (b *Buffer) PutInt32Ordered(offset int32, value int32) {
	atomic.StoreInt32((*int32)(b.addr(offset)), value)
}

// CompareAndSetInt32 performs an acquire-release CAS.
func (b *Buffer) CompareAndSetInt32(offset int32, expected, update int32) bool {
	return atomic.CompareAndSwapInt32((*int32)(b.addr(offset)), expected, update)
}

// GetAndAddInt32 atomically adds delta and returns the prior value.
func (b *Buffer) GetAndAddInt32(offset int32, delta int32) int32 {
	return atomic.AddInt32((*int32)(b.addr(offset)), delta) - delta
}

// GetInt64 performs a plain, unordered read.
func (b *Buffer) GetInt64(offset int32) int64 {
	return *(*int64)(b.addr(offset))
}

// PutInt64 performs a plain, unordered write.
func (b *Buffer) PutInt64(offset int32, value int64) {
	*(*int64)(b.addr(offset)) = value
}

// GetInt64Volatile performs an acquire-ordered read.
func (b *Buffer) GetInt64Volatile(offset int32) int64 {
	return atomic.LoadInt64((*int64)(b.addr(offset)))
}

// PutInt64Ordered performs a release-ordered write.
func (b *Buffer) PutInt64Ordered(offset int32, value int64) {
	atomic.StoreInt64((*int64)(b.addr(offset)), value)
}

// CompareAndSetInt64 performs an acquire-release CAS.
func (b *Buffer) CompareAndSetInt64(offset int32, expected, update int64) bool {
	return atomic.CompareAndSwapInt64((*int64)(b.addr(offset)), expected, update)
}

// GetAndAddInt64 atomically adds delta and returns the prior value.
func (b *Buffer) GetAndAddInt64(offset int32, delta int64) int64 {
	return atomic.AddInt64((*int64)(b.addr(offset)), delta) - delta
}

// PutBytes copies length bytes from src starting at srcOffset into this
// buffer starting at offset. Plain, unordered.
func (b *Buffer) PutBytes(offset int32, src *Buffer, srcOffset int32, length int32) {
	if length == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(b.addr(offset)), length)
	source := unsafe.Slice((*byte)(src.addr(srcOffset)), length)
	copy(dst, source)
}

// GetBytes copies length bytes starting at offset into dst.
func (b *Buffer) GetBytes(offset int32, dst *Buffer, dstOffset int32, length int32) {
	dst.PutBytes(dstOffset, b, offset, length)
}

// Fill sets length bytes starting at offset to value.
func (b *Buffer) Fill(offset int32, length int32, value byte) {
	if length == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(b.addr(offset)), length)
	for i := range dst {
		dst[i] = value
	}
}

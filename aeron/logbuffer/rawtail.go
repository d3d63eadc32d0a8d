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

// PackTail packs a (termId, termOffset) pair into a single 64-bit raw tail
// counter: termId occupies the high 32 bits, termOffset the low 32 bits.
func PackTail(termID int32, termOffset int32) int64 {
	return (int64(termID) << 32) | int64(uint32(termOffset))
}

// TermID unpacks the term id from a raw tail counter, sign-extending the
// high 32 bits.
func TermID(rawTail int64) int32 {
	return int32(rawTail >> 32)
}

// TermOffset unpacks the term offset from a raw tail counter, saturating at
// termLength so a producer that has written past the end of a term never
// reports an offset greater than the term's length.
func TermOffset(rawTail int64, termLength int32) int32 {
	offset := int32(uint32(rawTail))
	if offset > termLength {
		return termLength
	}
	return offset
}

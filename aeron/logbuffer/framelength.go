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

import "github.com/skehrli/aeron-logbuffer/aeron/util"

// FragmentedFrameLength returns the total on-wire length, including every
// fragment's header and alignment padding, of a message of length bytes
// fragmented into frames carrying at most maxPayloadLength payload bytes
// each.
func FragmentedFrameLength(length int64, maxPayloadLength int32) int64 {
	n := length / int64(maxPayloadLength)
	r := length % int64(maxPayloadLength)
	var last int64
	if r > 0 {
		last = int64(util.AlignInt32(int32(r)+DataFrameHeader.Length, FrameAlignment))
	}
	return n*int64(maxPayloadLength+DataFrameHeader.Length) + last
}

// AssembledLength returns the length of a message once its fragments have
// been reassembled: the header plus the original payload. The result is
// DataFrameHeader.Length + length for every maxPayloadLength; the
// parameter is kept so call sites read the same way as
// FragmentedFrameLength's.
func AssembledLength(length int64, maxPayloadLength int32) int64 {
	n := length / int64(maxPayloadLength)
	r := length % int64(maxPayloadLength)
	return int64(DataFrameHeader.Length) + n*int64(maxPayloadLength) + r
}

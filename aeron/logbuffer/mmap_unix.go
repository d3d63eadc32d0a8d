//go:build unix

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
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MappedLogBuffers is a LogBuffers backed by a real memory-mapped file,
// the way a media driver and its producers/consumers actually share a log
// buffer. Mapping mechanics are explicitly out of scope for the core
// protocol (spec non-goals); this is the thin, single-purpose seam that
// lets the core run against a real file without pulling the driver's
// file-creation protocol into this package.
type MappedLogBuffers struct {
	*LogBuffers
	region []byte
}

// MapLogBuffers memory-maps an existing log buffer file of the given
// termLength, verifies the on-disk term length against the metadata
// recorded in the file, and returns the mapped buffers. The caller owns
// file and is responsible for closing it; the mapping remains valid
// independent of the descriptor's lifetime once established.
func MapLogBuffers(file *os.File, termLength int32) (*MappedLogBuffers, error) {
	if err := CheckTermLength(termLength); err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("logbuffer: stat: %w", err)
	}

	want := int64(termLength)*PartitionCount + int64(MetaDataLength)
	if info.Size() < want {
		return nil, fmt.Errorf("%w: file length %d shorter than required %d", ErrInvalidLength, info.Size(), want)
	}

	region, err := unix.Mmap(int(file.Fd()), 0, int(want), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("logbuffer: mmap: %w", err)
	}

	var terms [PartitionCount][]byte
	for i := 0; i < PartitionCount; i++ {
		terms[i] = region[int64(i)*int64(termLength) : int64(i+1)*int64(termLength)]
	}
	metaData := region[int64(PartitionCount)*int64(termLength):want]

	lb, err := NewLogBuffers(terms, metaData)
	if err != nil {
		_ = unix.Munmap(region)
		return nil, err
	}

	if err := lb.VerifyTermLength(); err != nil {
		_ = unix.Munmap(region)
		return nil, err
	}

	if err := lb.VerifyPartitionGaps(); err != nil {
		_ = unix.Munmap(region)
		return nil, err
	}

	return &MappedLogBuffers{LogBuffers: lb, region: region}, nil
}

// Close unmaps the underlying region. It must not be called more than
// once.
func (m *MappedLogBuffers) Close() error {
	return unix.Munmap(m.region)
}

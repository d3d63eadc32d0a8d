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

package term

import "github.com/skehrli/aeron-logbuffer/aeron/logbuffer"

// RotateLog advances the log buffer described by metaData from termCount
// (whose term id is termID) to termCount+1. It may be called by any actor
// that discovers the active term is exhausted: a producer whose append
// overran, a producer that padded the remainder, or a consumer crossing
// the term boundary. Multiple actors may call it concurrently with the
// same (termCount, termID); exactly one of them performs the logical
// rotation, and RotateLog reports whether this call was the one that did.
//
// A false return is not an error: it means another actor's call already
// completed the same rotation.
func RotateLog(metaData *logbuffer.LogMetaDataFlyweight, termCount int64, termID int32) bool {
	nextTermID := termID + 1
	nextTermCount := termCount + 1
	nextIndex := logbuffer.IndexByTermCount(nextTermCount)
	expectedTermID := nextTermID - logbuffer.PartitionCount

	for {
		rawTail := metaData.RawTailVolatile(nextIndex)
		if logbuffer.TermID(rawTail) != expectedTermID {
			// Another actor already rotated this slot.
			break
		}

		updated := logbuffer.PackTail(nextTermID, 0)
		if metaData.CasRawTail(nextIndex, rawTail, updated) {
			break
		}
		// CAS lost the race against another actor also priming nextIndex;
		// its write will make the predicate above false on the next loop.
	}

	return metaData.CasActiveTermCount(int32(termCount), int32(nextTermCount))
}

// InitializeTailWithTermID primes partition p with termID at offset 0. Used
// once at log creation to prime partitions 0/1/2 with initialTermID+0,
// +1, +2 respectively.
func InitializeTailWithTermID(metaData *logbuffer.LogMetaDataFlyweight, partitionIndex int32, termID int32) {
	metaData.SetRawTail(partitionIndex, logbuffer.PackTail(termID, 0))
}

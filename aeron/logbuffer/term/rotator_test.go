package term

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skehrli/aeron-logbuffer/aeron/logbuffer"
)

func newRotatorTestMeta(t *testing.T) *logbuffer.LogMetaDataFlyweight {
	t.Helper()
	buf := make([]byte, logbuffer.MetaDataLength)
	m, err := logbuffer.WrapLogMetaData(buf)
	require.NoError(t, err)
	return m
}

// S2: end of term 0 -> term 1.
func TestRotateLogScenario(t *testing.T) {
	m := newRotatorTestMeta(t)
	m.SetActiveTermCount(0)
	m.SetRawTail(0, logbuffer.PackTail(7, 65536))
	m.SetRawTail(1, logbuffer.PackTail(8, 0))
	m.SetRawTail(2, logbuffer.PackTail(9, 0))

	ok := RotateLog(m, 0, 7)
	require.True(t, ok)
	require.EqualValues(t, 1, m.ActiveTermCount())
	require.Equal(t, logbuffer.PackTail(8, 0), m.RawTailVolatile(1))
}

// P5 + S4: K threads race to rotate the same (termCount, termID); exactly
// one observes a successful activeTermCount CAS, and after all return the
// metadata is in the single expected post-rotation state.
func TestRotateLogConcurrentExactlyOneWinner(t *testing.T) {
	const workers = 32

	m := newRotatorTestMeta(t)
	m.SetActiveTermCount(0)
	m.SetRawTail(0, logbuffer.PackTail(7, 65536))
	m.SetRawTail(1, logbuffer.PackTail(8, 0))
	m.SetRawTail(2, logbuffer.PackTail(9, 0))

	var wg sync.WaitGroup
	results := make([]bool, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = RotateLog(m, 0, 7)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r {
			winners++
		}
	}
	require.Equal(t, 1, winners)

	require.EqualValues(t, 1, m.ActiveTermCount())
	require.Equal(t, logbuffer.PackTail(8, 0), m.RawTailVolatile(1))
}

func TestRotateLogSecondCallIsNoop(t *testing.T) {
	m := newRotatorTestMeta(t)
	m.SetActiveTermCount(0)
	m.SetRawTail(0, logbuffer.PackTail(7, 65536))
	m.SetRawTail(1, logbuffer.PackTail(8, 0))
	m.SetRawTail(2, logbuffer.PackTail(9, 0))

	require.True(t, RotateLog(m, 0, 7))
	require.False(t, RotateLog(m, 0, 7))
	require.EqualValues(t, 1, m.ActiveTermCount())
}

func TestInitializeTailWithTermID(t *testing.T) {
	m := newRotatorTestMeta(t)
	InitializeTailWithTermID(m, 0, 5)
	InitializeTailWithTermID(m, 1, 6)
	InitializeTailWithTermID(m, 2, 7)

	require.Equal(t, logbuffer.PackTail(5, 0), m.RawTail(0))
	require.Equal(t, logbuffer.PackTail(6, 0), m.RawTail(1))
	require.Equal(t, logbuffer.PackTail(7, 0), m.RawTail(2))
}

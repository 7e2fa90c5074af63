//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

var memPrefixes = []string{
	"a", "ab", "abc",
	"h", "he", "hel", "hell", "hello",
	"p", "pr", "pro", "prog", "program",
	"c", "co", "com", "comp", "computer",
	"helo", "progrm", "computr", // spell checked
}

func newMemEngine(t *testing.T) *Engine {
	t.Helper()
	log.SetLevel(log.ErrorLevel)
	engine, err := NewEngine(WithCacheSize(64))
	require.NoError(t, err)

	entries := make([]Entry, 0, 20000)
	for i := 0; i < 20000; i++ {
		stem := memPrefixes[i%len(memPrefixes)]
		entries = append(entries, Entry{Word: fmt.Sprintf("%s%05d", stem, i), Frequency: i % 997})
	}
	entries = append(entries, Entry{Word: "hello", Frequency: 500}, Entry{Word: "program", Frequency: 400}, Entry{Word: "computer", Frequency: 300})
	engine.AddWordsBulk(entries)
	return engine
}

// heapDelta runs fn and returns the change in live heap bytes and goroutines.
func heapDelta(fn func()) (int64, int) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	goroutines := runtime.NumGoroutine()

	fn()

	runtime.GC()
	runtime.ReadMemStats(&after)
	return int64(after.HeapAlloc) - int64(before.HeapAlloc), runtime.NumGoroutine() - goroutines
}

func TestMemoryBoundedByCache(t *testing.T) {
	for _, iterations := range []int{20, 100} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			engine := newMemEngine(t)

			delta, goroutines := heapDelta(func() {
				for i := 0; i < iterations; i++ {
					for _, p := range memPrefixes {
						engine.SuggestionsWithSpellCheck(p, 1+i%16, -1)
					}
				}
			})

			ops := iterations * len(memPrefixes)
			t.Logf("ops=%d heap_delta=%d bytes per_op=%.2f goroutine_delta=%d",
				ops, delta, float64(delta)/float64(ops), goroutines)

			if delta > 4<<20 {
				t.Errorf("heap grew by %d bytes, cache should cap retained results", delta)
			}
			if goroutines > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutines)
			}
		})
	}
}

func TestMemoryConcurrent(t *testing.T) {
	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			engine := newMemEngine(t)

			delta, goroutines := heapDelta(func() {
				var wg sync.WaitGroup
				for w := 0; w < workers; w++ {
					wg.Add(1)
					go func(w int) {
						defer wg.Done()
						for i := 0; i < 1000/workers; i++ {
							p := memPrefixes[(i+w)%len(memPrefixes)]
							engine.Suggestions(p, 10, true)
							if i%50 == 0 {
								engine.IncrementFrequency("hello", 1)
							}
						}
					}(w)
				}
				wg.Wait()
			})

			t.Logf("workers=%d heap_delta=%d bytes goroutine_delta=%d", workers, delta, goroutines)
			if delta > 4<<20 {
				t.Errorf("heap grew by %d bytes", delta)
			}
			if goroutines > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutines)
			}
		})
	}
}

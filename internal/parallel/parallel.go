// Package parallel provides an opt-in chunked loop for materializing large
// expressions across goroutines.
//
// Nothing in the array packages uses it implicitly; callers choose it through
// tensor.EvalParallel and must guarantee that the evaluated expression only
// reads shared state.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines.
	MinChunkSize int  // Minimum elements per goroutine.
}

// DefaultConfig returns a disabled configuration sized for this machine.
// Set Enabled to opt in.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		NumWorkers:   runtime.NumCPU(),
		MinChunkSize: 4096,
	}
}

// Chunks splits [0, n) into contiguous half-open ranges of at least
// cfg.MinChunkSize elements, at most cfg.NumWorkers of them.
func Chunks(n int, cfg Config) [][2]int {
	if n <= 0 {
		return nil
	}
	workers := max(cfg.NumWorkers, 1)
	size := max((n+workers-1)/workers, cfg.MinChunkSize, 1)

	var out [][2]int
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// ForRange calls f(start, end) for every chunk of [0, n) and blocks until all
// calls return. Falls back to a single f(0, n) call when parallelism is
// disabled or n is smaller than two chunks.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for _, c := range Chunks(n, cfg) {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(c[0], c[1])
	}
	wg.Wait()
}

// Package parallel splits row ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the number of items below which Ranges runs inline.
const DefaultThreshold = 4096

// Ranges calls fn over disjoint [start, end) ranges that together cover
// [0, n). Above threshold the ranges run concurrently, one per available
// processor; otherwise fn is called once on the calling goroutine. Ranges
// returns after every call has finished.
func Ranges(n, threshold int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n <= threshold || workers == 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	// ceiling division so the last range absorbs the remainder
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

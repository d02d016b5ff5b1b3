package asterovis

import (
	"runtime"
	"sync"
)

// parallelRange splits [0,n) into one contiguous chunk per CPU and runs fn on
// each chunk concurrently. Callers must only write to indices inside their own
// chunk; shared inputs must stay read-only for the duration.
func parallelRange(n int, fn func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	per := n / workers
	rem := n % workers

	var wg sync.WaitGroup
	wg.Add(workers)
	lo := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		hi := lo + count
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
		lo = hi
	}
	wg.Wait()
}

package density

import "sync"

// parallelRows splits [0, n) into contiguous row ranges and runs fn on each
// range in its own goroutine, returning once every range is done. With
// workers <= 1 (or n <= 1) fn runs once on the calling goroutine.
//
// Callers must only write to locations owned by their row range.
func parallelRows(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		if start >= n {
			break
		}
		end := min(start+rowsPerWorker, n)

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}

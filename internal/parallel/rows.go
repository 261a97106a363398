// SPDX-License-Identifier: MIT

// Package parallel fans row-indexed numeric work out over a bounded set of
// goroutines. Each worker owns a contiguous block of rows, so results written
// into disjoint row slots need no further synchronisation.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinRowsPerWorker keeps tiny inputs on the calling goroutine's schedule
// instead of paying goroutine start-up for a handful of rows.
const MinRowsPerWorker = 16

// Rows calls fn(lo, hi) over consecutive half-open row ranges covering [0, n).
// At most runtime.GOMAXPROCS(0) ranges run at once. The first non-nil error
// is returned after all started workers finish.
//
// Complexity: O(n) scheduling overhead, work is whatever fn does.
func Rows(n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if maxWorkers := (n + MinRowsPerWorker - 1) / MinRowsPerWorker; workers > maxWorkers {
		workers = maxWorkers
	}
	if workers <= 1 {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}

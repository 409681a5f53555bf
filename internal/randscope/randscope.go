// Package randscope guards the process-wide random generator used for
// stochastic experiment steps. With scopes a seeded generator over a block
// of work and guarantees the previous generator, with its position intact,
// is restored on every exit path.
package randscope

import (
	"math/rand"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	current = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// With installs a generator seeded with seed for the duration of fn and
// restores the previous generator afterwards, whether fn returns nil or an
// error. The previous generator is untouched while the scope is active, so
// its sequence resumes exactly where it left off.
//
// Scopes must not overlap: With is not safe to call concurrently with
// itself. Draws via the package functions are safe from any goroutine.
func With(seed int64, fn func() error) error {
	mu.Lock()
	prev := current
	current = rand.New(rand.NewSource(seed))
	mu.Unlock()

	defer func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}()

	return fn()
}

// Int63 draws from the current generator.
func Int63() int64 {
	mu.Lock()
	defer mu.Unlock()
	return current.Int63()
}

// Intn draws a value in [0, n) from the current generator.
func Intn(n int) int {
	mu.Lock()
	defer mu.Unlock()
	return current.Intn(n)
}

// Float64 draws a value in [0, 1) from the current generator.
func Float64() float64 {
	mu.Lock()
	defer mu.Unlock()
	return current.Float64()
}

// Perm returns a random permutation of [0, n) from the current generator,
// used for reproducible dataset shuffles inside a With scope.
func Perm(n int) []int {
	mu.Lock()
	defer mu.Unlock()
	return current.Perm(n)
}

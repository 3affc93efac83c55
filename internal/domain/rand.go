package domain

import (
	"math/rand"
	"sync"
)

// randomSource serializes access to the engine's random generator. The scorers
// may run from many goroutines at once, and *rand.Rand is not safe for
// concurrent use.
type randomSource struct {
	mu            sync.Mutex
	r             *rand.Rand
	deterministic bool
}

var rng = &randomSource{r: rand.New(rand.NewSource(rand.Int63()))}

// SetRandSeed re-seeds the engine's random source so jitter sequences are
// reproducible across runs.
func SetRandSeed(seed int64) {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	rng.r = rand.New(rand.NewSource(seed))
}

// SetDeterministic toggles deterministic mode. When enabled, jitter terms are
// zero and uniform draws collapse to the midpoint of their range, so repeated
// assessments of the same reading produce identical output.
func SetDeterministic(on bool) {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	rng.deterministic = on
}

// jitter returns a uniform draw in [-scale, scale], or 0 in deterministic mode.
func jitter(scale float64) float64 {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	if rng.deterministic {
		return 0
	}
	return (rng.r.Float64()*2 - 1) * scale
}

// uniform returns a draw in [lo, hi), or the midpoint in deterministic mode.
func uniform(lo, hi float64) float64 {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	if rng.deterministic {
		return (lo + hi) / 2
	}
	return lo + rng.r.Float64()*(hi-lo)
}

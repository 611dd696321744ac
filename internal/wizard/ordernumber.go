package wizard

import (
	"math/rand"
	"sync"
	"time"
)

// OrderNumbers supplies the receipt number for a completed order. Numbers
// are for display only; callers must not rely on uniqueness or ordering.
type OrderNumbers interface {
	Next() int
}

// OrderNumberFunc adapts a plain function to OrderNumbers.
type OrderNumberFunc func() int

func (f OrderNumberFunc) Next() int { return f() }

// RandomOrderNumbers draws four-digit numbers in [1000, 9999].
type RandomOrderNumbers struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomOrderNumbers uses src, or a time-seeded source when src is nil.
func NewRandomOrderNumbers(src rand.Source) *RandomOrderNumbers {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomOrderNumbers{rng: rand.New(src)}
}

func (r *RandomOrderNumbers) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 1000 + r.rng.Intn(9000)
}

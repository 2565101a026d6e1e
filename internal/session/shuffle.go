package session

import (
	"math/rand"
	"time"
)

// rng is the slice of math/rand the shuffler needs. Tests inject a
// deterministic source; production uses a time-seeded one.
type rng interface {
	Intn(n int) int
}

func newRand() rng {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shuffle permutes s in place using Fisher-Yates.
func shuffle[T any](r rng, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

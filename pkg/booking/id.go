package booking

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrIDExhausted is returned when every generated identifier collided with
// an existing ledger entry.
var ErrIDExhausted = errors.New("could not generate a unique rental id")

// IDGenerator produces rental identifiers of the form <prefix><5 digits>.
// Each candidate is checked against the ledger and redrawn on collision.
type IDGenerator struct {
	prefix   string
	attempts int
	intN     func(n int) int // test seam
}

// NewIDGenerator creates a generator with the given identifier prefix.
func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{
		prefix:   prefix,
		attempts: 32,
		intN:     rand.Intn,
	}
}

// Next draws identifiers until one is unused according to exists, up to a
// bounded number of attempts.
func (g *IDGenerator) Next(exists func(id string) (bool, error)) (string, error) {
	for i := 0; i < g.attempts; i++ {
		id := fmt.Sprintf("%s%05d", g.prefix, 10000+g.intN(90000))
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Format(t *testing.T) {
	g := NewIDGenerator("CRS-")

	id, err := g.Next(func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Regexp(t, `^CRS-\d{5}$`, id)
}

func TestIDGenerator_RetriesOnCollision(t *testing.T) {
	g := NewIDGenerator("CRS-")
	draws := []int{0, 0, 1} // two collisions, then a fresh number
	g.intN = func(int) int {
		d := draws[0]
		draws = draws[1:]
		return d
	}

	id, err := g.Next(func(id string) (bool, error) {
		return id == "CRS-10000", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "CRS-10001", id)
}

func TestIDGenerator_ExhaustsAttempts(t *testing.T) {
	g := NewIDGenerator("CRS-")

	_, err := g.Next(func(string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, ErrIDExhausted)
}

package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/funzone/internal/rng"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := rng.New(42), rng.New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNew_ValuesInRange(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 500; i++ {
		v := s.Intn(9)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 9)
		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestNew_ShuffleIsPermutation(t *testing.T) {
	s := rng.New(1)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, xs)
}

func TestScripted_Cycles(t *testing.T) {
	s := rng.NewScripted([]int{3, 11}, []float64{0.05, 0.9})

	assert.Equal(t, 3, s.Intn(9))
	assert.Equal(t, 2, s.Intn(9))
	assert.Equal(t, 3, s.Intn(9))
	assert.Equal(t, 0.05, s.Float64())
	assert.Equal(t, 0.9, s.Float64())

	xs := []int{1, 2, 3}
	s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	assert.Equal(t, []int{1, 2, 3}, xs)
}

func TestScripted_EmptyDefaults(t *testing.T) {
	s := rng.NewScripted(nil, nil)
	assert.Equal(t, 0, s.Intn(5))
	assert.Equal(t, 0.5, s.Float64())
}

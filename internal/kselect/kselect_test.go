package kselect

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func separatedBlocks() ([][]float64, [][]int) {
	numeric := make([][]float64, 0, 60)
	categorical := make([][]int, 0, 60)
	rng := rand.New(rand.NewSource(5))
	for _, c := range [][2]float64{{0, 0}, {20, 20}, {-20, 20}} {
		for i := 0; i < 20; i++ {
			numeric = append(numeric, []float64{c[0] + rng.Float64(), c[1] + rng.Float64()})
			categorical = append(categorical, []int{0})
		}
	}
	return numeric, categorical
}

func TestSelectReturnsKMinWhenRangeEmpty(t *testing.T) {
	numeric := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	categorical := [][]int{{0}, {0}, {0}}
	rng := rand.New(rand.NewSource(1))

	k := Select(rng, numeric, categorical, 5, 10, MethodSilhouette)
	assert.Equal(t, 5, k)
}

func TestSelectSilhouetteFindsThreeClusters(t *testing.T) {
	numeric, categorical := separatedBlocks()
	rng := rand.New(rand.NewSource(2))

	k := Select(rng, numeric, categorical, 2, 6, MethodSilhouette)
	assert.Equal(t, 3, k)
}

func TestSelectElbowReturnsWithinRange(t *testing.T) {
	numeric, categorical := separatedBlocks()
	rng := rand.New(rand.NewSource(2))

	k := Select(rng, numeric, categorical, 2, 6, MethodElbow)
	assert.GreaterOrEqual(t, k, 2)
	assert.LessOrEqual(t, k, 6)
}

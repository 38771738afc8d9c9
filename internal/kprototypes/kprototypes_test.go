package kprototypes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockData() ([][]float64, [][]int) {
	numeric := make([][]float64, 0, 30)
	categorical := make([][]int, 0, 30)
	rng := rand.New(rand.NewSource(99))
	centers := [][2]float64{{0, 0}, {10, 10}, {-10, 10}}
	for _, c := range centers {
		for i := 0; i < 10; i++ {
			numeric = append(numeric, []float64{c[0] + rng.Float64(), c[1] + rng.Float64()})
			categorical = append(categorical, []int{int(c[0]) % 2})
		}
	}
	return numeric, categorical
}

func TestPredictAgreesWithFitLabels(t *testing.T) {
	numeric, categorical := blockData()
	rng := rand.New(rand.NewSource(7))

	model := Fit(rng, numeric, categorical, 3, 5, 0)

	for i := range numeric {
		predicted := model.Predict(numeric[i], categorical[i])
		assert.Equal(t, model.Labels[i], predicted)
	}
}

func TestClusterSizesSumToN(t *testing.T) {
	numeric, categorical := blockData()
	rng := rand.New(rand.NewSource(3))
	model := Fit(rng, numeric, categorical, 3, 5, 0)

	sizes := make(map[int]int)
	for _, l := range model.Labels {
		sizes[l]++
	}
	total := 0
	for _, n := range sizes {
		total += n
	}
	assert.Equal(t, len(numeric), total)
}

func TestFitRecoversThreeWellSeparatedClusters(t *testing.T) {
	numeric, categorical := blockData()
	rng := rand.New(rand.NewSource(11))
	model := Fit(rng, numeric, categorical, 3, 10, 0)

	distinct := map[int]bool{}
	for _, l := range model.Labels {
		distinct[l] = true
	}
	require.Len(t, distinct, 3)
}

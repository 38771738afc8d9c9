package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plantgen-backend/internal/features"
)

func TestCosineSimilarityIdenticalVectorsIsOne(t *testing.T) {
	var v [features.NumericFieldCount]float64
	for i := range v {
		v[i] = float64(i + 1)
	}
	assert.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarityZeroVectorIsZero(t *testing.T) {
	var zero, other [features.NumericFieldCount]float64
	other[0] = 1
	assert.Equal(t, 0.0, cosineSimilarity(zero, other))
}

func TestCategoricalMismatchCount(t *testing.T) {
	a := features.Transformed{Objective: "alimenticio", Region: 1}
	b := features.Transformed{Objective: "alimenticio", Region: 1}
	assert.Equal(t, 0, categoricalMismatchCount(a, b))

	c := features.Transformed{Objective: "medicinal", Region: 2}
	assert.Equal(t, 2, categoricalMismatchCount(a, c))
}

func TestScorePenalizesMismatchByGamma(t *testing.T) {
	a := features.Transformed{Objective: "alimenticio", Region: 1}
	match := features.Transformed{Objective: "alimenticio", Region: 1}
	mismatch := features.Transformed{Objective: "medicinal", Region: 2}

	gamma := 0.5
	assert.InDelta(t, score(a, match, gamma), 0.0, 1e-9)
	assert.InDelta(t, score(a, mismatch, gamma), -1.0, 1e-9)
}

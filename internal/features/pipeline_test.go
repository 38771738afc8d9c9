package features

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVectors() []Vector {
	vectors := make([]Vector, 0, 25)
	for i := 0; i < 25; i++ {
		v := Vector{UserID: string(rune('a' + i))}
		v.Numeric[0] = float64(i)
		v.Numeric[6] = float64(i * 3)
		v.Latitude = DefaultLatitude + float64(i%3)
		v.Longitude = DefaultLongitude + float64(i%3)
		v.Objective = DefaultObjective
		vectors = append(vectors, v)
	}
	return vectors
}

func TestPipelineRoundTrip(t *testing.T) {
	raw := sampleVectors()
	rng := rand.New(rand.NewSource(1))

	p := &Pipeline{}
	fitted := p.FitTransform(rng, raw)
	transformed := p.Transform(raw)

	require.Len(t, fitted, len(transformed))
	for i := range fitted {
		assert.InDeltaSlice(t, fitted[i].Numeric[:], transformed[i].Numeric[:], 1e-9)
		assert.Equal(t, fitted[i].Region, transformed[i].Region)
	}
}

func TestScalerHandlesConstantColumn(t *testing.T) {
	raw := []Vector{{Numeric: [NumericFieldCount]float64{}}, {Numeric: [NumericFieldCount]float64{}}}
	var s Scaler
	s.Fit(raw)
	out := s.Transform(raw[0].Numeric)
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestRegionDiscretizerSingleRegionBelowThreshold(t *testing.T) {
	points := make([][2]float64, 5)
	rng := rand.New(rand.NewSource(2))
	rd := FitRegionDiscretizer(rng, points)
	assert.Len(t, rd.Centroids, 1)
}

func TestExtractRawDefaultsLocation(t *testing.T) {
	v := ExtractRaw("u1", UserDoc{}, nil)
	assert.Equal(t, DefaultLatitude, v.Latitude)
	assert.Equal(t, DefaultLongitude, v.Longitude)
	assert.Equal(t, DefaultObjective, v.Objective)
}

func TestExtractRawCategoryBreakdownPercentages(t *testing.T) {
	gardens := []GardenDoc{
		{"categoryBreakdown": map[string]interface{}{"vegetable": 3.0, "aromatic": 1.0}},
	}
	v := ExtractRaw("u1", UserDoc{}, gardens)
	assert.InDelta(t, 0.75, v.Numeric[12], 1e-9)
	assert.InDelta(t, 0.25, v.Numeric[15], 1e-9)
}

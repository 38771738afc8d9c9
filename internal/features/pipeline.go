package features

import "math/rand"

// Transformed is a standardized numeric block plus the encoded categorical
// block, ready for the clusterer.
type Transformed struct {
	UserID    string
	Numeric   [NumericFieldCount]float64
	Objective string
	Region    int
}

// Pipeline holds the scaler and region discretizer learned at fit time.
type Pipeline struct {
	Scaler  Scaler
	Regions *RegionDiscretizer
}

// FitTransform fits the scaler and region discretizer on raw and returns the
// transformed block for every input vector, in the same order.
func (p *Pipeline) FitTransform(rng *rand.Rand, raw []Vector) []Transformed {
	p.Scaler.Fit(raw)

	points := make([][2]float64, len(raw))
	for i, v := range raw {
		points[i] = [2]float64{v.Latitude, v.Longitude}
	}
	p.Regions = FitRegionDiscretizer(rng, points)

	return p.transform(raw)
}

// Transform applies the already-fitted scaler and region discretizer. It
// must only be called after FitTransform (or after restoring a persisted
// Pipeline); invariant 8 requires this to be a pure function of its fitted
// parameters and the input.
func (p *Pipeline) Transform(raw []Vector) []Transformed {
	return p.transform(raw)
}

func (p *Pipeline) transform(raw []Vector) []Transformed {
	out := make([]Transformed, len(raw))
	for i, v := range raw {
		out[i] = Transformed{
			UserID:    v.UserID,
			Numeric:   p.Scaler.Transform(v.Numeric),
			Objective: v.Objective,
			Region:    p.Regions.Assign(v.Latitude, v.Longitude),
		}
	}
	return out
}

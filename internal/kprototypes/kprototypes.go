// Package kprototypes implements a K-Prototypes-style mixed numeric and
// categorical clusterer (§4.6): numeric centroids by arithmetic mean,
// categorical modes by per-feature most-frequent value, and distance
// Σ(x_num-c_num)² + γ·Σ𝟙[x_cat≠c_cat].
package kprototypes

import (
	"math"
	"math/rand"
)

// Model is a fitted clusterer: k clusters described by numeric centroids and
// categorical modes, plus the γ weight and training-time labels/cost used by
// the k-selector and the elbow method.
type Model struct {
	K                 int
	NumericCentroids  [][]float64
	CategoricalModes  [][]int
	Gamma             float64
	Labels            []int
	Cost              float64
}

// distance computes the mixed-type distance between one point and one
// cluster prototype.
func distance(xNum []float64, xCat []int, centroid []float64, mode []int, gamma float64) float64 {
	var d float64
	for i := range xNum {
		diff := xNum[i] - centroid[i]
		d += diff * diff
	}
	var mismatches int
	for i := range xCat {
		if xCat[i] != mode[i] {
			mismatches++
		}
	}
	return d + gamma*float64(mismatches)
}

func averageNumericStd(numeric [][]float64) float64 {
	if len(numeric) == 0 || len(numeric[0]) == 0 {
		return 1
	}
	nFeatures := len(numeric[0])
	var sumStd float64
	for col := 0; col < nFeatures; col++ {
		var sum float64
		for _, row := range numeric {
			sum += row[col]
		}
		mean := sum / float64(len(numeric))
		var sq float64
		for _, row := range numeric {
			d := row[col] - mean
			sq += d * d
		}
		sumStd += math.Sqrt(sq / float64(len(numeric)))
	}
	return sumStd / float64(nFeatures)
}

// huangInit samples k initial prototypes: numeric centroids uniformly from
// the data (a random point's numeric vector), categorical modes sampled
// according to each field's empirical frequency — "Huang-style"
// diversity-preserving initialization (§4.6).
func huangInit(rng *rand.Rand, numeric [][]float64, categorical [][]int, k int) ([][]float64, [][]int) {
	n := len(numeric)
	nCat := 0
	if n > 0 {
		nCat = len(categorical[0])
	}

	centroids := make([][]float64, k)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		src := numeric[perm[i%n]]
		c := make([]float64, len(src))
		copy(c, src)
		centroids[i] = c
	}

	modes := make([][]int, k)
	for i := 0; i < k; i++ {
		modes[i] = make([]int, nCat)
		for f := 0; f < nCat; f++ {
			modes[i][f] = weightedSampleCategory(rng, categorical, f)
		}
	}
	return centroids, modes
}

func weightedSampleCategory(rng *rand.Rand, categorical [][]int, field int) int {
	counts := map[int]int{}
	for _, row := range categorical {
		counts[row[field]]++
	}
	total := len(categorical)
	if total == 0 {
		return 0
	}
	target := rng.Intn(total)
	cum := 0
	// Iterate in a stable order (ascending key) so the same RNG draw always
	// picks the same category, preserving determinism under seed.
	keys := sortedKeys(counts)
	for _, k := range keys {
		cum += counts[k]
		if target < cum {
			return k
		}
	}
	return keys[len(keys)-1]
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func mostFrequent(values []int) int {
	counts := map[int]int{}
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, -1
	for _, k := range sortedKeys(counts) {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

const defaultMaxIter = 100

// fitOnce runs one random-start Lloyd-style iteration to convergence or
// defaultMaxIter, whichever comes first.
func fitOnce(rng *rand.Rand, numeric [][]float64, categorical [][]int, k int, gamma float64) *Model {
	centroids, modes := huangInit(rng, numeric, categorical, k)
	labels := make([]int, len(numeric))

	for iter := 0; iter < defaultMaxIter; iter++ {
		changed := false
		for i := range numeric {
			best, bestDist := 0, math.MaxFloat64
			for c := 0; c < k; c++ {
				d := distance(numeric[i], categorical[i], centroids[c], modes[c], gamma)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				changed = true
			}
			labels[i] = best
		}

		nFeatures := 0
		if len(numeric) > 0 {
			nFeatures = len(numeric[0])
		}
		nCat := 0
		if len(categorical) > 0 {
			nCat = len(categorical[0])
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		catValues := make([][][]int, k)
		for c := 0; c < k; c++ {
			sums[c] = make([]float64, nFeatures)
			catValues[c] = make([][]int, nCat)
		}
		for i, row := range numeric {
			c := labels[i]
			counts[c]++
			for f := 0; f < nFeatures; f++ {
				sums[c][f] += row[f]
			}
			for f := 0; f < nCat; f++ {
				catValues[c][f] = append(catValues[c][f], categorical[i][f])
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // keep the previous centroid/mode for an emptied cluster
			}
			for f := 0; f < nFeatures; f++ {
				centroids[c][f] = sums[c][f] / float64(counts[c])
			}
			for f := 0; f < nCat; f++ {
				modes[c][f] = mostFrequent(catValues[c][f])
			}
		}

		if !changed {
			break
		}
	}

	var cost float64
	for i := range numeric {
		cost += distance(numeric[i], categorical[i], centroids[labels[i]], modes[labels[i]], gamma)
	}

	return &Model{K: k, NumericCentroids: centroids, CategoricalModes: modes, Gamma: gamma, Labels: labels, Cost: cost}
}

// Fit runs nInit independent random-start fits and keeps the lowest-cost
// result (§4.6). gamma defaults to the average numeric feature standard
// deviation when gammaOverride is 0.
func Fit(rng *rand.Rand, numeric [][]float64, categorical [][]int, k, nInit int, gammaOverride float64) *Model {
	gamma := gammaOverride
	if gamma == 0 {
		gamma = averageNumericStd(numeric)
	}

	var best *Model
	for i := 0; i < nInit; i++ {
		m := fitOnce(rng, numeric, categorical, k, gamma)
		if best == nil || m.Cost < best.Cost {
			best = m
		}
	}
	return best
}

// Predict assigns the nearest cluster to a new point using the fitted model.
func (m *Model) Predict(xNum []float64, xCat []int) int {
	best, bestDist := 0, math.MaxFloat64
	for c := 0; c < m.K; c++ {
		d := distance(xNum, xCat, m.NumericCentroids[c], m.CategoricalModes[c], m.Gamma)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

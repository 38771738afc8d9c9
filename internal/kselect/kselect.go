// Package kselect chooses a cluster count by silhouette score or elbow
// method (§4.5), sweeping a small multi-start fit per candidate k.
package kselect

import (
	"math"
	"math/rand"

	"plantgen-backend/internal/kprototypes"
)

// Method is the k-selection scoring strategy.
type Method string

const (
	MethodSilhouette Method = "silhouette"
	MethodElbow      Method = "elbow"
)

// sweepNInit is the reduced multi-start budget used while sweeping
// candidate k values; the final fit uses a larger budget (§4.6).
const sweepNInit = 5

// Select sweeps k in [kMin, min(kMax, N/10)] and returns the best k by the
// given method. If the resulting range is empty (kMax < kMin), kMin is
// returned without a search.
func Select(rng *rand.Rand, numeric [][]float64, categorical [][]int, kMin, kMax int, method Method) int {
	n := len(numeric)
	upper := kMax
	if n/10 < upper {
		upper = n / 10
	}
	if upper < kMin {
		return kMin
	}

	type candidate = struct {
		k     int
		model *kprototypes.Model
	}
	candidates := make([]candidate, 0, upper-kMin+1)
	for k := kMin; k <= upper; k++ {
		m := kprototypes.Fit(rng, numeric, categorical, k, sweepNInit, 0)
		candidates = append(candidates, candidate{k: k, model: m})
	}

	switch method {
	case MethodElbow:
		return elbowBest(candidates)
	default:
		bestK, bestScore := candidates[0].k, math.Inf(-1)
		for _, c := range candidates {
			score := silhouette(numeric, c.model.Labels)
			if score > bestScore {
				bestK, bestScore = c.k, score
			}
		}
		return bestK
	}
}

func elbowBest(candidates []struct {
	k     int
	model *kprototypes.Model
}) int {
	if len(candidates) == 1 {
		return candidates[0].k
	}
	bestIdx, bestDiff := 0, -1.0
	for i := 1; i < len(candidates); i++ {
		diff := math.Abs(candidates[i].model.Cost - candidates[i-1].model.Cost)
		if diff > bestDiff {
			bestDiff, bestIdx = diff, i
		}
	}
	return candidates[bestIdx].k
}

// Silhouette exposes the silhouette computation for callers that already
// have a fitted model (the training pipeline records it on ClusterModel).
func Silhouette(numeric [][]float64, labels []int) float64 {
	return silhouette(numeric, labels)
}

// silhouette computes the mean silhouette score on the numeric block only
// (§4.5 notes categorical inclusion makes the score unstable).
func silhouette(numeric [][]float64, labels []int) float64 {
	n := len(numeric)
	if n < 2 {
		return 0
	}
	clusterOf := labels

	var total float64
	for i := 0; i < n; i++ {
		var aSum float64
		aCount := 0
		bBest := math.Inf(1)
		otherSums := map[int]float64{}
		otherCounts := map[int]int{}

		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := euclidean(numeric[i], numeric[j])
			if clusterOf[j] == clusterOf[i] {
				aSum += d
				aCount++
			} else {
				otherSums[clusterOf[j]] += d
				otherCounts[clusterOf[j]]++
			}
		}

		a := 0.0
		if aCount > 0 {
			a = aSum / float64(aCount)
		}
		for c, sum := range otherSums {
			avg := sum / float64(otherCounts[c])
			if avg < bBest {
				bBest = avg
			}
		}
		if math.IsInf(bBest, 1) {
			continue // no other cluster to compare against: this point contributes 0
		}

		maxAB := a
		if bBest > maxAB {
			maxAB = bBest
		}
		if maxAB == 0 {
			continue
		}
		total += (bBest - a) / maxAB
	}
	return total / float64(n)
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

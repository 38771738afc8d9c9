package features

import (
	"math"
	"math/rand"
)

// RegionDiscretizer replaces raw (lat, lon) with an integer region id by
// fitting a secondary k-means over geolocation (§4.4). With fewer than 20
// users, every point collapses to region 0 rather than running a sweep over
// an under-populated space.
type RegionDiscretizer struct {
	Centroids [][2]float64
}

const minUsersForRegionSplit = 20
const maxRegions = 10

func regionK(n int) int {
	if n < minUsersForRegionSplit {
		return 1
	}
	k := n / 10
	if k > maxRegions {
		k = maxRegions
	}
	if k < 1 {
		k = 1
	}
	return k
}

// FitRegionDiscretizer runs a small k-means (fixed iteration cap, single
// start — geolocation discretization does not need the multi-start budget
// the main clusterer uses) over the given points.
func FitRegionDiscretizer(rng *rand.Rand, points [][2]float64) *RegionDiscretizer {
	k := regionK(len(points))
	if k == 1 || len(points) == 0 {
		centroid := [2]float64{DefaultLatitude, DefaultLongitude}
		if len(points) > 0 {
			var sumLat, sumLon float64
			for _, p := range points {
				sumLat += p[0]
				sumLon += p[1]
			}
			centroid = [2]float64{sumLat / float64(len(points)), sumLon / float64(len(points))}
		}
		return &RegionDiscretizer{Centroids: [][2]float64{centroid}}
	}

	centroids := make([][2]float64, k)
	perm := rng.Perm(len(points))
	for i := 0; i < k; i++ {
		centroids[i] = points[perm[i]]
	}

	const maxIter = 50
	assignments := make([]int, len(points))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.MaxFloat64
			for c, centroid := range centroids {
				d := sqDist(p, centroid)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				changed = true
			}
			assignments[i] = best
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			counts[c]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = [2]float64{sums[c][0] / float64(counts[c]), sums[c][1] / float64(counts[c])}
			}
		}
		if !changed {
			break
		}
	}

	return &RegionDiscretizer{Centroids: centroids}
}

func sqDist(a, b [2]float64) float64 {
	dLat := a[0] - b[0]
	dLon := a[1] - b[1]
	return dLat*dLat + dLon*dLon
}

// Assign returns the nearest region id for (lat, lon).
func (r *RegionDiscretizer) Assign(lat, lon float64) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range r.Centroids {
		d := sqDist([2]float64{lat, lon}, c)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

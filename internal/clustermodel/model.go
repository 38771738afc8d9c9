// Package clustermodel defines the ClusterModel entity, its atomic blob
// persistence (§4.9), a pgx-backed version index, and the pointer-publication
// hot-swap store used to serve predictions during retraining (§5, S6).
package clustermodel

import (
	"time"

	"plantgen-backend/internal/features"
)

// CurrentSchemaVersion is bumped whenever the persisted blob's shape changes
// in a way that is not backward compatible. Load fails fast on a mismatch
// rather than attempting best-effort decoding of stale data.
const CurrentSchemaVersion = 1

// ClusterModel is the fitted, persisted state behind the Clustering Engine.
type ClusterModel struct {
	Version        string
	SchemaVersion  int
	K              int
	NumericCentroids [][]float64
	CategoricalModes [][]int
	Gamma          float64
	ScalerMean     [features.NumericFieldCount]float64
	ScalerStd      [features.NumericFieldCount]float64
	RegionCentroids [][2]float64
	FeatureSchema  []string
	Silhouette     float64
	FitTimestamp   time.Time
}

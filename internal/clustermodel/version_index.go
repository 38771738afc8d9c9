package clustermodel

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VersionRecord is one row of the model-version index: which blob is the
// latest, and the training-run metrics that produced it.
type VersionRecord struct {
	Version      string
	K            int
	Silhouette   float64
	FitTimestamp time.Time
}

// VersionIndex is a small relational index over the blob directory so
// `status`/admin listing (§6) doesn't need to scan the filesystem. This is
// the one place this codebase reaches for pgx rather than the document
// store: the question it answers ("what's the latest trained version and
// how did it score") is naturally tabular and append-only.
type VersionIndex struct {
	pool *pgxpool.Pool
}

// NewVersionIndex wraps a pool. Callers are expected to have already run the
// (out-of-scope, per the Non-goals) schema migration creating model_versions.
func NewVersionIndex(pool *pgxpool.Pool) *VersionIndex {
	return &VersionIndex{pool: pool}
}

func (v *VersionIndex) Record(ctx context.Context, rec VersionRecord) error {
	_, err := v.pool.Exec(ctx,
		`INSERT INTO model_versions (version, k, silhouette, fit_timestamp)
		 VALUES ($1, $2, $3, $4)`,
		rec.Version, rec.K, rec.Silhouette, rec.FitTimestamp)
	if err != nil {
		return fmt.Errorf("clustermodel: record version: %w", err)
	}
	return nil
}

func (v *VersionIndex) Latest(ctx context.Context) (*VersionRecord, error) {
	row := v.pool.QueryRow(ctx,
		`SELECT version, k, silhouette, fit_timestamp FROM model_versions
		 ORDER BY fit_timestamp DESC LIMIT 1`)

	var rec VersionRecord
	if err := row.Scan(&rec.Version, &rec.K, &rec.Silhouette, &rec.FitTimestamp); err != nil {
		return nil, fmt.Errorf("clustermodel: latest version: %w", err)
	}
	return &rec, nil
}

func (v *VersionIndex) List(ctx context.Context) ([]VersionRecord, error) {
	rows, err := v.pool.Query(ctx,
		`SELECT version, k, silhouette, fit_timestamp FROM model_versions ORDER BY fit_timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("clustermodel: list versions: %w", err)
	}
	defer rows.Close()

	var out []VersionRecord
	for rows.Next() {
		var rec VersionRecord
		if err := rows.Scan(&rec.Version, &rec.K, &rec.Silhouette, &rec.FitTimestamp); err != nil {
			return nil, fmt.Errorf("clustermodel: scan version: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

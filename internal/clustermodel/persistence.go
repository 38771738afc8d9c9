package clustermodel

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"plantgen-backend/internal/apperrors"
)

// Save writes model to <dir>/model-<version>.blob using the write-temp,
// fsync, rename sequence (§4.9) so a crash mid-write never leaves a
// corrupted file at the final path.
func Save(dir, version string, model *ClusterModel) error {
	model.SchemaVersion = CurrentSchemaVersion
	final := filepath.Join(dir, fmt.Sprintf("model-%s.blob", version))
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return apperrors.PersistenceFailure(err)
	}
	if err := gob.NewEncoder(f).Encode(model); err != nil {
		f.Close()
		os.Remove(tmp)
		return apperrors.PersistenceFailure(err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return apperrors.PersistenceFailure(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return apperrors.PersistenceFailure(err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return apperrors.PersistenceFailure(err)
	}
	return nil
}

// Load reads and decodes the blob for version, verifying the schema version
// matches CurrentSchemaVersion. A mismatch is a fatal, surfaced error (§4.9)
// rather than a best-effort partial load.
func Load(dir, version string) (*ClusterModel, error) {
	path := filepath.Join(dir, fmt.Sprintf("model-%s.blob", version))
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.PersistenceFailure(err)
	}
	defer f.Close()

	var model ClusterModel
	if err := gob.NewDecoder(f).Decode(&model); err != nil {
		return nil, apperrors.PersistenceFailure(err)
	}
	if model.SchemaVersion != CurrentSchemaVersion {
		return nil, apperrors.PersistenceFailure(
			fmt.Errorf("model schema version %d does not match running binary's %d", model.SchemaVersion, CurrentSchemaVersion))
	}
	return &model, nil
}

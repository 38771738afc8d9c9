package clustermodel

import "sync/atomic"

// Store publishes a *ClusterModel via pointer swap (§5): readers always see
// either the old or the new model in its entirety, never a torn mix, and
// never take a lock to read. Writers (training.Pipeline) serialize through
// their own single-writer mutex around the persistence step, external to
// this type.
type Store struct {
	current atomic.Pointer[ClusterModel]
}

// NewStore wraps an initial model, which may be nil if none has been
// trained yet.
func NewStore(initial *ClusterModel) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Load returns the active model, or nil if none has ever been published.
func (s *Store) Load() *ClusterModel {
	return s.current.Load()
}

// Publish atomically swaps in a newly trained model.
func (s *Store) Publish(m *ClusterModel) {
	s.current.Store(m)
}

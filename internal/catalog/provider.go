package catalog

import "context"

// Provider is the capability record the optimizer and training pipeline accept.
// Per the polymorphic-repositories design note, this replaces a dynamic-dispatch
// abstract class with a two-method interface — no inheritance, no base class.
type Provider interface {
	ListPlants(ctx context.Context) ([]Plant, error)
	ListCompatibilityPairs(ctx context.Context) ([]CompatibilityPair, error)
}

// MemoryProvider is a fixed, in-memory Provider. It is the default for tests and
// for any deployment that ships its catalog as embedded data rather than a store.
type MemoryProvider struct {
	plants []Plant
	pairs  []CompatibilityPair
}

// NewMemoryProvider copies the given slices so later caller mutation cannot
// violate the catalog's load-time-immutable lifecycle.
func NewMemoryProvider(plants []Plant, pairs []CompatibilityPair) *MemoryProvider {
	p := make([]Plant, len(plants))
	copy(p, plants)
	c := make([]CompatibilityPair, len(pairs))
	copy(c, pairs)
	return &MemoryProvider{plants: p, pairs: c}
}

func (m *MemoryProvider) ListPlants(ctx context.Context) ([]Plant, error) {
	out := make([]Plant, len(m.plants))
	copy(out, m.plants)
	return out, nil
}

func (m *MemoryProvider) ListCompatibilityPairs(ctx context.Context) ([]CompatibilityPair, error) {
	out := make([]CompatibilityPair, len(m.pairs))
	copy(out, m.pairs)
	return out, nil
}

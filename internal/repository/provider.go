// Package repository implements the §6 user/garden provider: the training
// pipeline's and recommendation scorer's window onto opaque user and garden
// documents. It replaces this codebase's original MUD-specific spatial/world
// repositories with the garden-platform equivalent, kept in the pgx/Mongo
// style those repositories established.
package repository

import (
	"context"

	"plantgen-backend/internal/features"
)

// UserRecord is one user document plus the handful of fields the training
// and recommendation paths need outside the opaque feature-extraction map.
type UserRecord struct {
	ID           string
	Doc          features.UserDoc
	PushToken    string
	ClusterLabel int
	HasLabel     bool
}

// GardenRecord is one garden document plus the fields the recommendation
// projection (§4.7) surfaces directly, kept out of the opaque map so
// callers don't need to know its internal key names.
type GardenRecord struct {
	ID          string
	OwnerID     string
	Doc         features.GardenDoc
	Name        string
	Description string
	Active      bool
}

// UserGardenProvider is the §6 "user/garden provider": iterate all users,
// iterate gardens by owner, read one user by id, update one user's cluster
// label. ListUsersByClusterLabel is an addition the recommendation scorer
// needs beyond the spec's enumerated four operations.
type UserGardenProvider interface {
	ListUsers(ctx context.Context) ([]UserRecord, error)
	ListUsersByClusterLabel(ctx context.Context, label int) ([]UserRecord, error)
	GardensByOwner(ctx context.Context, ownerID string) ([]GardenRecord, error)
	UserByID(ctx context.Context, id string) (UserRecord, error)
	UpdateClusterLabel(ctx context.Context, userID string, label int) error
}

// MemoryProvider is a fixed, in-memory UserGardenProvider for tests.
type MemoryProvider struct {
	users   map[string]UserRecord
	gardens map[string][]GardenRecord
}

func NewMemoryProvider(users []UserRecord, gardens []GardenRecord) *MemoryProvider {
	m := &MemoryProvider{
		users:   make(map[string]UserRecord, len(users)),
		gardens: make(map[string][]GardenRecord),
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	for _, g := range gardens {
		m.gardens[g.OwnerID] = append(m.gardens[g.OwnerID], g)
	}
	return m
}

func (m *MemoryProvider) ListUsers(ctx context.Context) ([]UserRecord, error) {
	out := make([]UserRecord, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MemoryProvider) ListUsersByClusterLabel(ctx context.Context, label int) ([]UserRecord, error) {
	var out []UserRecord
	for _, u := range m.users {
		if u.HasLabel && u.ClusterLabel == label {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MemoryProvider) GardensByOwner(ctx context.Context, ownerID string) ([]GardenRecord, error) {
	out := make([]GardenRecord, len(m.gardens[ownerID]))
	copy(out, m.gardens[ownerID])
	return out, nil
}

func (m *MemoryProvider) UserByID(ctx context.Context, id string) (UserRecord, error) {
	u, ok := m.users[id]
	if !ok {
		return UserRecord{}, errNotFound(id)
	}
	return u, nil
}

func (m *MemoryProvider) UpdateClusterLabel(ctx context.Context, userID string, label int) error {
	u, ok := m.users[userID]
	if !ok {
		return errNotFound(userID)
	}
	u.ClusterLabel = label
	u.HasLabel = true
	m.users[userID] = u
	return nil
}

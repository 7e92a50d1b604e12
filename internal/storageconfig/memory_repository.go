package storageconfig

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-glossary/pkg/storage"
)

// MemoryRepository keeps profiles in a process-local map. It backs tests and
// embedded deployments that configure storage once at boot.
type MemoryRepository struct {
	mu          sync.RWMutex
	profiles    map[string]storage.Profile
	broadcaster *changeBroadcaster
}

// NewMemoryRepository returns an empty in-memory profile store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles:    make(map[string]storage.Profile),
		broadcaster: newChangeBroadcaster(),
	}
}

// List returns every stored profile sorted by name.
func (r *MemoryRepository) List(context.Context) ([]storage.Profile, error) {
	r.mu.RLock()
	out := make([]storage.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, snapshotProfile(profile))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b storage.Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Get returns the named profile or ErrProfileNotFound.
func (r *MemoryRepository) Get(_ context.Context, name string) (*storage.Profile, error) {
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	profile, ok := r.profiles[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrProfileNotFound
	}

	out := snapshotProfile(profile)
	return &out, nil
}

// Upsert validates and stores the profile, then broadcasts a created or
// updated event depending on whether the name was already present.
func (r *MemoryRepository) Upsert(_ context.Context, profile storage.Profile) (*storage.Profile, error) {
	key, err := normalizeName(profile.Name)
	if err != nil {
		return nil, err
	}
	profile.Name = key
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	stored := snapshotProfile(profile)
	r.mu.Lock()
	_, replaced := r.profiles[key]
	r.profiles[key] = stored
	r.mu.Unlock()

	event := ChangeEvent{Type: ChangeCreated, Profile: snapshotProfile(stored)}
	if replaced {
		event.Type = ChangeUpdated
	}
	r.broadcaster.Broadcast(event)

	out := snapshotProfile(stored)
	return &out, nil
}

// Delete removes the named profile and broadcasts a deleted event. Removing an
// unknown name reports ErrProfileNotFound.
func (r *MemoryRepository) Delete(_ context.Context, name string) error {
	key, err := normalizeName(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	profile, ok := r.profiles[key]
	if ok {
		delete(r.profiles, key)
	}
	r.mu.Unlock()
	if !ok {
		return ErrProfileNotFound
	}

	r.broadcaster.Broadcast(ChangeEvent{Type: ChangeDeleted, Profile: snapshotProfile(profile)})
	return nil
}

// Subscribe streams change events until ctx is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

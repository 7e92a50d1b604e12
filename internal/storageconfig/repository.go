// Package storageconfig keeps the catalog's runtime storage profiles: named
// connection descriptors the container resolves into live database handles.
// Repositories persist profiles and announce every mutation so the container
// can swap the backing store without a restart.
package storageconfig

import (
	"context"
	"errors"
	"maps"
	"strings"

	"github.com/goliatone/go-glossary/pkg/storage"
)

var (
	// ErrProfileNotFound is returned when no profile matches the requested name.
	ErrProfileNotFound = errors.New("storageconfig: profile not found")

	// ErrProfileNameRequired is returned when an operation is attempted with a
	// blank profile name.
	ErrProfileNameRequired = errors.New("storageconfig: profile name is required")
)

// Repository persists storage profiles. Upsert and Delete must emit a change
// event for each successful write so subscribers observe every mutation.
type Repository interface {
	List(ctx context.Context) ([]storage.Profile, error)
	Get(ctx context.Context, name string) (*storage.Profile, error)
	Upsert(ctx context.Context, profile storage.Profile) (*storage.Profile, error)
	Delete(ctx context.Context, name string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// normalizeName trims the profile name and rejects blank values. Both
// repository implementations route lookups and writes through it so a name
// padded with whitespace addresses the same profile everywhere.
func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrProfileNameRequired
	}
	return trimmed, nil
}

// snapshotProfile deep-copies a profile so stored state, returned values, and
// event payloads never share maps or slices with caller-owned data.
func snapshotProfile(profile storage.Profile) storage.Profile {
	out := profile
	if profile.Config.Options != nil {
		out.Config.Options = maps.Clone(profile.Config.Options)
	}
	if profile.Fallbacks != nil {
		out.Fallbacks = append([]string(nil), profile.Fallbacks...)
	}
	if profile.Labels != nil {
		out.Labels = maps.Clone(profile.Labels)
	}
	return out
}

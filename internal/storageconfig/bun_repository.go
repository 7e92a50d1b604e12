package storageconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-glossary/pkg/storage"
	"github.com/uptrace/bun"
)

var errDatabaseRequired = errors.New("storageconfig: bun repository requires a database")

// profileModel is the row shape for persisted profiles. Config, fallbacks,
// and labels are stored as JSON so the table works on both SQLite and
// Postgres dialects.
type profileModel struct {
	bun.BaseModel `bun:"table:storage_profiles"`

	Name        string            `bun:",pk"`
	Description string            `bun:"description"`
	Provider    string            `bun:"provider"`
	Config      storage.Config    `bun:"config,type:jsonb"`
	Fallbacks   []string          `bun:"fallbacks,type:jsonb,nullzero"`
	Labels      map[string]string `bun:"labels,type:jsonb,nullzero"`
	Default     bool              `bun:"is_default"`
	CreatedAt   time.Time         `bun:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at"`
}

func newProfileModel(profile storage.Profile) profileModel {
	copied := snapshotProfile(profile)
	if copied.Fallbacks == nil {
		// JSON null and empty list round-trip differently; store [].
		copied.Fallbacks = []string{}
	}
	return profileModel{
		Name:        copied.Name,
		Description: copied.Description,
		Provider:    copied.Provider,
		Config:      copied.Config,
		Fallbacks:   copied.Fallbacks,
		Labels:      copied.Labels,
		Default:     copied.Default,
	}
}

func (m *profileModel) asProfile() storage.Profile {
	if m == nil {
		return storage.Profile{}
	}
	return snapshotProfile(storage.Profile{
		Name:        m.Name,
		Description: m.Description,
		Provider:    m.Provider,
		Config:      m.Config,
		Fallbacks:   m.Fallbacks,
		Labels:      m.Labels,
		Default:     m.Default,
	})
}

// BunRepository persists profiles through a bun.DB handle, letting hosts keep
// glossary storage configuration next to the rest of their schema.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
}

// NewBunRepository wraps db as a profile repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newChangeBroadcaster(),
	}
}

// EnsureSchema creates the storage_profiles table when it does not exist yet.
// Hosts that migrate their database themselves can skip it.
func (r *BunRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*profileModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// List returns every stored profile sorted by name.
func (r *BunRepository) List(ctx context.Context) ([]storage.Profile, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}

	var models []profileModel
	if err := r.db.NewSelect().Model(&models).Order("name ASC").Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]storage.Profile, len(models))
	for i := range models {
		out[i] = models[i].asProfile()
	}
	return out, nil
}

// Get returns the named profile or ErrProfileNotFound.
func (r *BunRepository) Get(ctx context.Context, name string) (*storage.Profile, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	model, err := r.findModel(ctx, key)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrProfileNotFound
	}

	profile := model.asProfile()
	return &profile, nil
}

// Upsert validates and writes the profile, preserving the original creation
// timestamp on updates, then broadcasts the matching change event.
func (r *BunRepository) Upsert(ctx context.Context, profile storage.Profile) (*storage.Profile, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}
	key, err := normalizeName(profile.Name)
	if err != nil {
		return nil, err
	}
	profile.Name = key
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	existing, err := r.findModel(ctx, key)
	if err != nil {
		return nil, err
	}

	model := newProfileModel(profile)
	model.UpdatedAt = time.Now().UTC()
	if existing == nil {
		model.CreatedAt = model.UpdatedAt
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return nil, err
		}
	} else {
		model.CreatedAt = existing.CreatedAt
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("description", "provider", "config", "fallbacks", "labels", "is_default", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return nil, err
		}
	}

	stored, err := r.findModel(ctx, key)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrProfileNotFound
	}

	out := stored.asProfile()
	event := ChangeEvent{Type: ChangeUpdated, Profile: snapshotProfile(out)}
	if existing == nil {
		event.Type = ChangeCreated
	}
	r.broadcaster.Broadcast(event)
	return &out, nil
}

// Delete removes the named profile and broadcasts a deleted event.
func (r *BunRepository) Delete(ctx context.Context, name string) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	key, err := normalizeName(name)
	if err != nil {
		return err
	}

	model, err := r.findModel(ctx, key)
	if err != nil {
		return err
	}
	if model == nil {
		return ErrProfileNotFound
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}

	r.broadcaster.Broadcast(ChangeEvent{Type: ChangeDeleted, Profile: model.asProfile()})
	return nil
}

// Subscribe streams change events until ctx is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

// findModel loads the row for name, reporting absence as a nil model rather
// than an error.
func (r *BunRepository) findModel(ctx context.Context, name string) (*profileModel, error) {
	var model profileModel
	err := r.db.NewSelect().Model(&model).Where("name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

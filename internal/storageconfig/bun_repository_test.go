package storageconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-glossary/pkg/storage"
	"github.com/goliatone/go-glossary/pkg/testsupport"
)

func newBunTestRepo(t *testing.T) *BunRepository {
	t.Helper()
	repo := NewBunRepository(testsupport.NewSQLiteMemoryDB(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return repo
}

func TestBunRepositoryLifecycleEvents(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	if list, err := repo.List(ctx); err != nil || len(list) != 0 {
		t.Fatalf("empty list: got %v, %v", list, err)
	}

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	profile := catalogProfile()
	stored, err := repo.Upsert(ctx, profile)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if stored.Name != "catalog" || stored.Config.DSN != "file:catalog.db?cache=shared" {
		t.Fatalf("stored profile = %+v", stored)
	}
	if len(stored.Fallbacks) != 1 || stored.Fallbacks[0] != "archive" {
		t.Fatalf("fallbacks did not round-trip: %#v", stored.Fallbacks)
	}
	if stored.Labels["env"] != "test" {
		t.Fatalf("labels did not round-trip: %#v", stored.Labels)
	}
	waitEvent(t, events, ChangeCreated, "catalog")

	profile.Description = "Primary glossary catalog (rw)"
	if _, err := repo.Upsert(ctx, profile); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	waitEvent(t, events, ChangeUpdated, "catalog")

	fetched, err := repo.Get(ctx, "catalog")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Description != "Primary glossary catalog (rw)" {
		t.Fatalf("update not persisted: %+v", fetched)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "catalog" {
		t.Fatalf("list = %+v", list)
	}

	if err := repo.Delete(ctx, "catalog"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	waitEvent(t, events, ChangeDeleted, "catalog")

	if _, err := repo.Get(ctx, "catalog"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound after delete, got %v", err)
	}
}

func TestBunRepositoryPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	if _, err := repo.Upsert(ctx, catalogProfile()); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	var first profileModel
	if err := repo.db.NewSelect().Model(&first).Where("name = ?", "catalog").Scan(ctx); err != nil {
		t.Fatalf("read first row: %v", err)
	}

	updated := catalogProfile()
	updated.Description = "rewritten"
	if _, err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	var second profileModel
	if err := repo.db.NewSelect().Model(&second).Where("name = ?", "catalog").Scan(ctx); err != nil {
		t.Fatalf("read second row: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed on update: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestBunRepositoryDeleteMissing(t *testing.T) {
	repo := newBunTestRepo(t)
	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestBunRepositoryValidatesInput(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	if _, err := repo.Upsert(ctx, storage.Profile{}); !errors.Is(err, ErrProfileNameRequired) {
		t.Fatalf("blank upsert: got %v", err)
	}
	if _, err := repo.Get(ctx, " "); !errors.Is(err, ErrProfileNameRequired) {
		t.Fatalf("blank get: got %v", err)
	}
	if err := repo.Delete(ctx, ""); !errors.Is(err, ErrProfileNameRequired) {
		t.Fatalf("blank delete: got %v", err)
	}

	malformed := storage.Profile{Name: "Catalog", Provider: "bun"}
	if _, err := repo.Upsert(ctx, malformed); !errors.Is(err, ErrProfileInvalid) {
		t.Fatalf("expected ErrProfileInvalid, got %v", err)
	}
}

func TestBunRepositoryRequiresDatabase(t *testing.T) {
	repo := NewBunRepository(nil)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err == nil {
		t.Fatalf("expected error from EnsureSchema without database")
	}
	if _, err := repo.List(ctx); err == nil {
		t.Fatalf("expected error from List without database")
	}
	if _, err := repo.Upsert(ctx, catalogProfile()); err == nil {
		t.Fatalf("expected error from Upsert without database")
	}
}

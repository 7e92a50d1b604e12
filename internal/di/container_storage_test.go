package di

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-glossary/internal/runtimeconfig"
	"github.com/goliatone/go-glossary/internal/storageconfig"
	"github.com/goliatone/go-glossary/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteProfile builds a shared in-memory sqlite profile whose DSN is unique
// per call so two tests never end up on the same database.
func sqliteProfile(name, tag string) storage.Profile {
	return storage.Profile{
		Name:     name,
		Provider: "bun",
		Default:  true,
		Config: storage.Config{
			Name:   name,
			Driver: "sqlite3",
			DSN:    fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", tag, time.Now().UnixNano()),
		},
	}
}

func newStorageContainer(t *testing.T, tag string, opts ...Option) *Container {
	t.Helper()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Profiles = []storage.Profile{sqliteProfile("primary", tag)}

	container, err := NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { container.Close(context.Background()) })

	if container.DB() == nil {
		t.Fatal("container booted without a database")
	}
	return container
}

func TestContainer_SwapsStorageProfile(t *testing.T) {
	repo := storageconfig.NewMemoryRepository()
	container := newStorageContainer(t, "hot_swap_boot", WithStorageRepository(repo))
	before := container.DB()

	if _, err := repo.Upsert(context.Background(), sqliteProfile("primary", "hot_swap_next")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	waitUntil(t, func() bool {
		db := container.DB()
		return db != nil && db != before && container.ActiveStorageProfile() == "primary"
	})
}

func TestContainer_FailedSwapKeepsActiveStorage(t *testing.T) {
	repo := storageconfig.NewMemoryRepository()

	failures := make(chan storage.Profile, 1)
	refuse := func(_ context.Context, profile storage.Profile) (StorageFactoryResult, error) {
		select {
		case failures <- profile:
		default:
		}
		return StorageFactoryResult{}, errors.New("refused")
	}

	container := newStorageContainer(t, "swap_failure",
		WithStorageRepository(repo),
		WithStorageFactory("flaky", refuse),
	)
	before := container.DB()

	broken := sqliteProfile("standby", "swap_failure_next")
	broken.Provider = "flaky"
	if _, err := repo.Upsert(context.Background(), broken); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	select {
	case profile := <-failures:
		if profile.Name != "standby" {
			t.Fatalf("factory saw profile %q, want standby", profile.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("factory was never invoked for the new profile")
	}

	// A failing factory returns before any container state is touched.
	if db := container.DB(); db != before {
		t.Fatal("database handle changed after failed swap")
	}
	if got := container.ActiveStorageProfile(); got != "primary" {
		t.Fatalf("active profile = %q, want primary", got)
	}
}

func TestContainer_BootsWithoutStorageProfiles(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if container.DB() != nil {
		t.Fatal("expected memory-backed container to run without a database")
	}
	if container.ActiveStorageProfile() != "" {
		t.Fatalf("active profile = %q, want none", container.ActiveStorageProfile())
	}
}

func TestContainer_CloseReleasesStorage(t *testing.T) {
	container := newStorageContainer(t, "close_release")

	if err := container.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if container.DB() != nil {
		t.Fatal("database survived Close")
	}
	if container.ActiveStorageProfile() != "" {
		t.Fatal("active profile survived Close")
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

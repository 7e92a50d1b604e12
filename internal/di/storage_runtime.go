package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	storageadapter "github.com/goliatone/go-glossary/internal/adapters/storage"
	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/internal/storageconfig"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	"github.com/goliatone/go-glossary/pkg/storage"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

const storageModule = "glossary.storage"

// StorageFactoryResult carries the handles a storage factory opened for a
// profile.
type StorageFactoryResult struct {
	Provider interfaces.StorageProvider
	DB       *bun.DB
	Close    func(context.Context) error
}

// StorageFactory opens the backing storage described by a runtime profile.
type StorageFactory func(ctx context.Context, profile storage.Profile) (StorageFactoryResult, error)

// storageHandle owns the artefacts of the active profile so a swap can tear
// down the previous database exactly once.
type storageHandle struct {
	profile  storage.Profile
	provider interfaces.StorageProvider
	db       *bun.DB
	closeFn  func(context.Context) error
}

// Close releases the database behind the handle.
func (h *storageHandle) Close(ctx context.Context) error {
	if h == nil || h.closeFn == nil {
		return nil
	}
	return h.closeFn(ctx)
}

func defaultStorageFactories() map[string]StorageFactory {
	return map[string]StorageFactory{
		"bun": openBunStorage,
	}
}

// openBunStorage opens a database/sql handle for the profile and wraps it in
// bun plus the glossary storage adapter. Drivers other than sqlite must be
// registered with database/sql by the host before the profile is applied.
func openBunStorage(ctx context.Context, profile storage.Profile) (StorageFactoryResult, error) {
	driver, dialect, err := resolveDialect(profile.Config.Driver)
	if err != nil {
		return StorageFactoryResult{}, fmt.Errorf("storage profile %q: %w", profile.Name, err)
	}

	dsn := strings.TrimSpace(profile.Config.DSN)
	if dsn == "" {
		return StorageFactoryResult{}, fmt.Errorf("storage profile %q: dsn is required", profile.Name)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return StorageFactoryResult{}, fmt.Errorf("storage profile %q: open %s: %w", profile.Name, driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return StorageFactoryResult{}, fmt.Errorf("storage profile %q: ping: %w", profile.Name, err)
	}

	db := bun.NewDB(sqlDB, dialect)
	return StorageFactoryResult{
		Provider: storageadapter.NewSQLProvider(sqlDB),
		DB:       db,
		Close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func resolveDialect(driver string) (string, schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", sqlitedialect.New(), nil
	case "postgres", "postgresql":
		return "postgres", pgdialect.New(), nil
	case "pgx":
		return "pgx", pgdialect.New(), nil
	default:
		return "", nil, fmt.Errorf("storage driver %q is not supported", driver)
	}
}

// configureStorage wires the repository proxies to their initial backend and
// starts the profile watcher when a profile repository is attached.
func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		c.applyBunRepositories(c.bunDB)
		return nil
	}

	profile, ok, err := c.bootProfile()
	if err != nil {
		return err
	}
	if ok {
		if err := c.applyProfile(context.Background(), profile); err != nil {
			return err
		}
	}

	if c.storageRepo != nil {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := c.storageRepo.Subscribe(ctx)
		if err != nil {
			cancel()
			return fmt.Errorf("subscribe to storage profiles: %w", err)
		}
		c.storageCancel = cancel
		go c.watchStorageProfiles(events)
	}
	return nil
}

// bootProfile selects the profile opened at container build time: configured
// profiles win, then whatever the profile repository holds.
func (c *Container) bootProfile() (storage.Profile, bool, error) {
	if len(c.Config.Storage.Profiles) > 0 {
		return selectProfile(c.Config.Storage.Profiles), true, nil
	}
	if c.storageRepo == nil {
		return storage.Profile{}, false, nil
	}
	profiles, err := c.storageRepo.List(context.Background())
	if err != nil {
		return storage.Profile{}, false, fmt.Errorf("list storage profiles: %w", err)
	}
	if len(profiles) == 0 {
		return storage.Profile{}, false, nil
	}
	return selectProfile(profiles), true, nil
}

func selectProfile(profiles []storage.Profile) storage.Profile {
	for _, profile := range profiles {
		if profile.Default {
			return profile
		}
	}
	return profiles[0]
}

// applyProfile opens the profile through its factory and swaps the active
// database. Failures leave the previous handle untouched.
func (c *Container) applyProfile(ctx context.Context, profile storage.Profile) error {
	factory, err := c.factoryFor(profile.Provider)
	if err != nil {
		return err
	}

	result, err := factory(ctx, profile)
	if err != nil {
		return err
	}
	if result.DB == nil {
		if result.Close != nil {
			result.Close(ctx)
		}
		return fmt.Errorf("storage profile %q: factory returned no database", profile.Name)
	}

	handle := &storageHandle{
		profile:  profile,
		provider: result.Provider,
		db:       result.DB,
		closeFn:  result.Close,
	}

	c.storageMu.Lock()
	previous := c.storageHandle
	c.storageHandle = handle
	c.bunDB = result.DB
	c.activeProfile = profile.Name
	if result.Provider != nil {
		c.storage = result.Provider
	}
	c.storageMu.Unlock()

	c.applyBunRepositories(result.DB)

	if previous != nil {
		if err := previous.Close(ctx); err != nil {
			c.storageLogger().Warn("storage.profile_close_failed",
				"profile", previous.profile.Name,
				"error", err.Error(),
			)
		}
	}

	c.storageLogger().Info("storage.profile_applied",
		"profile", profile.Name,
		"driver", profile.Config.Driver,
	)
	return nil
}

func (c *Container) factoryFor(provider string) (StorageFactory, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = "bun"
	}
	factory, ok := c.storageFactories[name]
	if !ok {
		return nil, fmt.Errorf("storage provider %q has no registered factory", provider)
	}
	return factory, nil
}

// applyBunRepositories swaps the repository proxies to bun-backed
// implementations, cached when a cache service is available.
func (c *Container) applyBunRepositories(db *bun.DB) {
	if db == nil {
		return
	}
	if c.cacheService != nil && c.keySerializer != nil {
		c.keywordProxy.swap(keywordsvc.NewBunKeywordRepositoryWithCache(db, c.cacheService, c.keySerializer))
		c.aliasProxy.swap(keywordsvc.NewBunAliasRepositoryWithCache(db, c.cacheService, c.keySerializer))
		c.categoryProxy.swap(keywordsvc.NewBunCategoryRepositoryWithCache(db, c.cacheService, c.keySerializer))
		return
	}
	c.keywordProxy.swap(keywordsvc.NewBunKeywordRepository(db))
	c.aliasProxy.swap(keywordsvc.NewBunAliasRepository(db))
	c.categoryProxy.swap(keywordsvc.NewBunCategoryRepository(db))
}

func (c *Container) watchStorageProfiles(events <-chan storageconfig.ChangeEvent) {
	for event := range events {
		c.handleProfileEvent(event)
	}
}

func (c *Container) handleProfileEvent(event storageconfig.ChangeEvent) {
	switch event.Type {
	case storageconfig.ChangeDeleted:
		if event.Profile.Name == c.ActiveStorageProfile() {
			c.storageLogger().Warn("storage.active_profile_deleted",
				"profile", event.Profile.Name,
			)
		}
	case storageconfig.ChangeCreated, storageconfig.ChangeUpdated:
		if !event.Profile.Default && event.Profile.Name != c.ActiveStorageProfile() {
			return
		}
		if err := c.applyProfile(context.Background(), event.Profile); err != nil {
			c.storageLogger().Error("storage.profile_apply_failed",
				"profile", event.Profile.Name,
				"error", err.Error(),
			)
		}
	}
}

func (c *Container) storageLogger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, storageModule)
}

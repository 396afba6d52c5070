package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/config"
	"github.com/vijay-prabhu/empscore/internal/database"
	"github.com/vijay-prabhu/empscore/internal/lock"
	"github.com/vijay-prabhu/empscore/internal/logging"
)

// loadConfig loads the config file and applies global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// openDB opens the configured database with the configured source tables
// and checks that it is reachable
func openDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Tables:   sourceTables(cfg.Source),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Health(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

func sourceTables(s config.SourceConfig) database.Tables {
	return database.Tables{
		PersonalInfo:    s.PersonalInfo,
		WorkInfo:        s.WorkInfo,
		TechnologyStack: s.TechnologyStack,
		Certificates:    s.Certificates,
		Education:       s.Education,
		Interviews:      s.Interviews,
		Offers:          s.Offers,
		Referrals:       s.Referrals,
		Reportings:      s.Reportings,
		ScoreMeta:       s.ScoreMeta,
	}
}

// lockKey scopes the run lock to one database
func lockKey(cfg *config.Config, db *database.DB) string {
	if db.Driver() == database.DriverMySQL {
		return lock.RunKey + ":" + cfg.Database.Host + "/" + cfg.Database.Name
	}
	return lock.RunKey + ":" + cfg.Database.Path
}

// openLocker builds the run lock. The returned func closes its connection.
func openLocker(cfg *config.Config) (lock.Locker, func(), error) {
	locker, err := lock.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if c, ok := locker.(io.Closer); ok {
		closeFn = func() { c.Close() }
	}
	return locker, closeFn, nil
}

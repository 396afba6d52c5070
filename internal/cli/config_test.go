package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vijay-prabhu/empscore/internal/config"
	"github.com/vijay-prabhu/empscore/internal/lock"
)

func TestDefaultConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("default config template does not load: %v", err)
	}

	// The template documents the built-in defaults
	defaults := config.Default()
	if !reflect.DeepEqual(cfg.Source, defaults.Source) {
		t.Errorf("template source tables differ from defaults: %+v", cfg.Source)
	}
	if !reflect.DeepEqual(cfg.Scoring, defaults.Scoring) {
		t.Errorf("template scoring differs from defaults: %+v", cfg.Scoring)
	}
	if cfg.Redis.Enabled || cfg.RabbitMQ.Enabled {
		t.Error("expected redis and rabbitmq disabled in the template")
	}
}

func TestLockKeyPerDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "scores.db")

	db, err := openDB(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openDB failed: %v", err)
	}
	defer db.Close()

	if got, want := lockKey(cfg, db), lock.RunKey+":"+cfg.Database.Path; got != want {
		t.Errorf("lockKey = %q, want %q", got, want)
	}
}

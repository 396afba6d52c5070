package lock

import (
	"context"
	"testing"

	"github.com/vijay-prabhu/empscore/internal/config"
)

func TestNewDisabled(t *testing.T) {
	l, err := New(config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := l.(*Dummy); !ok {
		t.Errorf("expected *Dummy, got %T", l)
	}
}

func TestNewUnreachable(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1", LockTTLMinutes: 1}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestDummy(t *testing.T) {
	ctx := context.Background()
	d := &Dummy{}

	release, err := d.Acquire(ctx, RunKey)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	// A dummy lock never blocks a second holder
	if _, err := d.Acquire(ctx, RunKey); err != nil {
		t.Fatalf("second Acquire() error: %v", err)
	}
	if err := release(ctx); err != nil {
		t.Errorf("release() error: %v", err)
	}
}

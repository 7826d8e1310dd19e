package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/mailstorm/internal/config"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailstorm.toml")
	if err := os.WriteFile(path, []byte("[dispatch]\nfallback = \"mu4e\"\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded := make(chan config.Config, 1)
	w, err := config.NewWatcher(path, func(cfg config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte("[dispatch]\nfallback = \"gnus\"\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Dispatch.Fallback != "gnus" {
			t.Errorf("reloaded fallback = %q, want gnus", cfg.Dispatch.Fallback)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailstorm.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := config.NewWatcher(path, func(config.Config) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	other := filepath.Join(dir, "unrelated.txt")
	if err := os.WriteFile(other, []byte("noise"), 0o644); err != nil {
		t.Fatalf("writing unrelated file: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("reload triggered by an unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailstorm.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	w, err := config.NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	d := Default()
	if d.Variant != "lockfree" || d.Buckets != 10000 || d.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestLoadFileEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "variant = \"locked\"\nbuckets = 64\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Variant != "locked" || cfg.Buckets != 64 {
		t.Fatalf("got %+v, want variant=locked buckets=64", cfg)
	}
	// Fields absent from the file keep their default.
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestLoadFileMissingFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestMergePrecedence(t *testing.T) {
	base := Config{Variant: "locked", Buckets: 64, LogLevel: "warn", MetricsAddr: ""}

	// No flags set: base passes through untouched.
	got := Merge(base, "", 0, "", "")
	if got != base {
		t.Fatalf("got %+v, want base %+v unchanged", got, base)
	}

	// Flags override every field.
	got = Merge(base, "lockfree", 128, "debug", ":9090")
	want := Config{Variant: "lockfree", Buckets: 128, LogLevel: "debug", MetricsAddr: ":9090"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestWatchNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("buckets = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	events := make(chan string, 1)
	closer, err := Watch(path, func(event string) {
		select {
		case events <- event:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer closer.Close()

	if err := os.WriteFile(path, []byte("buckets = 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a config change notification")
	}
}

func TestWatchEmptyPathIsNoop(t *testing.T) {
	closer, err := Watch("", func(string) {})
	if err != nil {
		t.Fatalf("Watch(\"\"): %v", err)
	}
	if closer != nil {
		t.Fatalf("expected a nil closer for an empty path")
	}
}

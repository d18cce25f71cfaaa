package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if !cfg.Index.Stem {
		t.Fatal("expected stemming enabled by default")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ferrodex.yaml")
	contents := "server:\n  addr: \":9090\"\nindex:\n  root: /data\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Index.Root != "/data" {
		t.Fatalf("Index.Root = %q, want /data", cfg.Index.Root)
	}
	// Unset fields still fall back to defaults.
	if !cfg.Index.RemoveStopwords {
		t.Fatal("expected remove_stopwords default to survive a partial override file")
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	bc, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bc.Server.HTTP.Addr != ":8000" {
		t.Errorf("addr = %s", bc.Server.HTTP.Addr)
	}
	if !bc.Moderation.Dedupe.Enabled {
		t.Error("dedupe disabled by default")
	}
	if bc.Moderation.TextExtractor.Enabled {
		t.Error("text extractor enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http:
    addr: ":9090"
    read_timeout: 1m
data:
  redis:
    url: "redis://cache:6379/1"
moderation:
  dedupe:
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	bc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bc.Server.HTTP.Addr != ":9090" {
		t.Errorf("addr = %s, want :9090", bc.Server.HTTP.Addr)
	}
	if bc.Server.HTTP.ReadTimeout.AsDuration() != time.Minute {
		t.Errorf("read timeout = %v, want 1m", bc.Server.HTTP.ReadTimeout)
	}
	if bc.Data.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("redis url = %s", bc.Data.Redis.URL)
	}
	if bc.Moderation.Dedupe.Enabled {
		t.Error("dedupe override not applied")
	}
	// Untouched sections keep their defaults.
	if bc.Data.Database.Driver != "postgres" {
		t.Errorf("driver = %s, want postgres default", bc.Data.Database.Driver)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

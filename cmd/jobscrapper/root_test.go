package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/amishk599/jobscrapper/internal/adapter"
	"github.com/amishk599/jobscrapper/internal/config"
	"github.com/amishk599/jobscrapper/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JOBSCRAPPER_CONFIG", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("addr = %q, want :5000", cfg.Server.Addr)
	}
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfig_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBSCRAPPER_CONFIG", path)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestCreateSource_Openers(t *testing.T) {
	cfg := config.Default()
	client := &http.Client{}

	_, opener, ok := createSource(adapter.SourceWeWorkRemotely, cfg, client, discardLogger())
	if !ok {
		t.Fatal("weworkremotely must be supported")
	}
	if _, isBrowser := opener.(*adapter.BrowserOpener); !isBrowser {
		t.Errorf("weworkremotely opener = %T, want *adapter.BrowserOpener", opener)
	}

	_, opener, ok = createSource(adapter.SourceWeb3Career, cfg, client, discardLogger())
	if !ok {
		t.Fatal("web3career must be supported")
	}
	if _, isHTTP := opener.(*adapter.HTTPFetcher); !isHTTP {
		t.Errorf("web3career opener = %T, want *adapter.HTTPFetcher", opener)
	}

	if _, _, ok := createSource("indeed", cfg, client, discardLogger()); ok {
		t.Error("unknown source must be rejected")
	}
}

func TestBuildOrchestrator_SourceOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []string{adapter.SourceBerlinStartupJobs, adapter.SourceWeb3Career}
	cfg.Retry.MaxRetries = 2

	orch := buildOrchestrator(cfg, store.NewNopCache(), discardLogger())
	got := orch.Sources()
	if len(got) != 2 || got[0] != adapter.SourceBerlinStartupJobs || got[1] != adapter.SourceWeb3Career {
		t.Errorf("sources = %v", got)
	}
}

func TestLoadConfig_ExpandsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("JOBSCRAPPER_CONFIG", "")
	t.Cleanup(func() { os.Unsetenv("JOBSCRAPPER_TEST_ADDR") })

	if err := os.WriteFile(".env", []byte("JOBSCRAPPER_TEST_ADDR=:7070\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("config.yaml", []byte("server:\n  addr: \"${JOBSCRAPPER_TEST_ADDR}\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
}

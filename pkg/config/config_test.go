package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setHomeEnv points HOME at a temp dir and clears every variable Load reads,
// so tests observe only what they set.
func setHomeEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY", "DEEPSEEK_API_KEY",
		"BIOROUTE_CATALOG_URL", "ROUTER_MODEL", "REASONER_MODEL", "PORT",
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".bioroute")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setHomeEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.Router.Adapter != "openai" || cfg.Router.Model != DefaultRouterModel {
		t.Errorf("Router = %+v", cfg.Router)
	}
	if cfg.Reasoner.Adapter != "openai" || cfg.Reasoner.Model != DefaultReasonerModel {
		t.Errorf("Reasoner = %+v", cfg.Reasoner)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := setHomeEnv(t)
	writeConfigFile(t, home, `
api_keys:
  openai: file-key
catalog:
  url: http://tools.internal:9000/mcp
models:
  router:
    adapter: anthropic
    model: claude-sonnet-4-20250514
  reasoner:
    model: gpt-5
server:
  addr: ":8080"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.OpenAIAPIKey != "file-key" {
		t.Errorf("OpenAIAPIKey = %q", cfg.OpenAIAPIKey)
	}
	if cfg.CatalogURL != "http://tools.internal:9000/mcp" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.Router.Adapter != "anthropic" || cfg.Router.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Router = %+v", cfg.Router)
	}
	if cfg.Reasoner.Adapter != "openai" || cfg.Reasoner.Model != "gpt-5" {
		t.Errorf("Reasoner = %+v", cfg.Reasoner)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := setHomeEnv(t)
	writeConfigFile(t, home, `
api_keys:
  openai: file-key
catalog:
  url: http://file:9000/mcp
models:
  router:
    model: file-router
`)

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("BIOROUTE_CATALOG_URL", "http://env:9000/mcp")
	t.Setenv("ROUTER_MODEL", "env-router")
	t.Setenv("REASONER_MODEL", "env-reasoner")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.OpenAIAPIKey != "env-key" {
		t.Errorf("OpenAIAPIKey = %q", cfg.OpenAIAPIKey)
	}
	if cfg.CatalogURL != "http://env:9000/mcp" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.Router.Model != "env-router" {
		t.Errorf("Router.Model = %q", cfg.Router.Model)
	}
	if cfg.Reasoner.Model != "env-reasoner" {
		t.Errorf("Reasoner.Model = %q", cfg.Reasoner.Model)
	}
}

func TestPortOverridesListenAddr(t *testing.T) {
	home := setHomeEnv(t)
	writeConfigFile(t, home, `
server:
  addr: ":8080"
`)
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	home := setHomeEnv(t)
	writeConfigFile(t, home, "{{{not yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
}

func TestHasAdapter(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-x", DeepSeekAPIKey: "ds-x"}

	cases := []struct {
		name string
		want bool
	}{
		{"openai", true},
		{"deepseek", true},
		{"anthropic", false},
		{"google", false},
		{"mistral", false},
	}
	for _, tc := range cases {
		if got := cfg.HasAdapter(tc.name); got != tc.want {
			t.Errorf("HasAdapter(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

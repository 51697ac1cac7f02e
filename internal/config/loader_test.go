package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Source.Kind != SourceFile {
		t.Errorf("expected source kind %q, got %q", SourceFile, cfg.Source.Kind)
	}
	if cfg.Logs.PageSize != 200 {
		t.Errorf("expected page size 200, got %d", cfg.Logs.PageSize)
	}
	if cfg.Logs.Template != TemplateConcise {
		t.Errorf("expected template %q, got %q", TemplateConcise, cfg.Logs.Template)
	}
	if cfg.Logs.Follow == nil || *cfg.Logs.Follow {
		t.Error("expected Follow default to be false")
	}
	if cfg.UI.AltScreen == nil || !*cfg.UI.AltScreen {
		t.Error("expected AltScreen default to be true")
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	want := filepath.Join(home, ".runlogs", "runs")
	if cfg.Source.Dir != want {
		t.Errorf("expected source dir %q, got %q", want, cfg.Source.Dir)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()

	yaml := `
source:
  kind: http
  url: "http://sematic.local:5001"
logs:
  page_size: 50
  template: full
`
	os.WriteFile(filepath.Join(tmp, "runlogs.yaml"), []byte(yaml), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Source.Kind != SourceHTTP {
		t.Errorf("expected source kind %q, got %q", SourceHTTP, cfg.Source.Kind)
	}
	if cfg.Source.URL != "http://sematic.local:5001" {
		t.Errorf("expected url override, got %q", cfg.Source.URL)
	}
	if cfg.Logs.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", cfg.Logs.PageSize)
	}
	if cfg.Logs.Template != TemplateFull {
		t.Errorf("expected template %q, got %q", TemplateFull, cfg.Logs.Template)
	}
	if cfg.Catalog.RefreshInterval != 5 {
		t.Errorf("expected refresh interval preserved as 5, got %d", cfg.Catalog.RefreshInterval)
	}
}

func TestLoadFromTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()

	toml := `
[source]
kind = "demo"

[logs]
follow_interval = 250
follow = true

[log]
level = "debug"
`
	os.WriteFile(filepath.Join(tmp, "runlogs.toml"), []byte(toml), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Source.Kind != SourceDemo {
		t.Errorf("expected source kind %q, got %q", SourceDemo, cfg.Source.Kind)
	}
	if cfg.Logs.FollowInterval != 250 {
		t.Errorf("expected follow interval 250, got %d", cfg.Logs.FollowInterval)
	}
	if cfg.Logs.Follow == nil || !*cfg.Logs.Follow {
		t.Error("expected Follow to be overridden to true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level %q, got %q", "debug", cfg.Log.Level)
	}
}

func TestYAMLWinsOverTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()

	os.WriteFile(filepath.Join(tmp, "runlogs.yaml"), []byte("logs:\n  page_size: 11\n"), 0644)
	os.WriteFile(filepath.Join(tmp, "runlogs.toml"), []byte("[logs]\npage_size = 22\n"), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Logs.PageSize != 11 {
		t.Errorf("expected yaml page size 11, got %d", cfg.Logs.PageSize)
	}
}

func TestMergePreservesDefaults(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	override := &Config{
		Source: SourceConfig{URL: "https://runs.example.com"},
	}

	merge(&base, override)

	if base.Source.URL != "https://runs.example.com" {
		t.Errorf("expected url %q, got %q", "https://runs.example.com", base.Source.URL)
	}
	if base.Source.Kind != SourceFile {
		t.Errorf("expected source kind preserved as %q, got %q", SourceFile, base.Source.Kind)
	}
	if base.Source.RetryMax != 3 {
		t.Errorf("expected retry max preserved as 3, got %d", base.Source.RetryMax)
	}
}

func TestMergeBoolPtrOverride(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()

	f := false
	tr := true
	override := &Config{
		Logs: LogsConfig{Follow: &tr},
		UI:   UIConfig{AltScreen: &f},
	}

	merge(&base, override)

	if base.Logs.Follow == nil || *base.Logs.Follow != true {
		t.Error("expected Follow to be overridden to true")
	}
	if base.UI.AltScreen == nil || *base.UI.AltScreen != false {
		t.Error("expected AltScreen to be overridden to false")
	}
}

func TestMergeBoolPtrNilPreservesDefault(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()

	merge(&base, &Config{})

	if base.UI.AltScreen == nil || *base.UI.AltScreen != true {
		t.Error("expected AltScreen to remain true when override is nil")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "runlogs.yaml"), []byte(""), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() with empty file error: %v", err)
	}
	if cfg.Logs.PageSize != 200 {
		t.Errorf("expected defaults with empty file, got page size %d", cfg.Logs.PageSize)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "runlogs.yaml"), []byte("logs: [unclosed"), 0644)

	if _, err := LoadFrom(tmp); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RUNLOGS_SOURCE", "http")
	t.Setenv("RUNLOGS_URL", "https://ci.example.com")
	t.Setenv("RUNLOGS_PAGE_SIZE", "75")
	t.Setenv("RUNLOGS_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Source.Kind != SourceHTTP {
		t.Errorf("expected source kind %q, got %q", SourceHTTP, cfg.Source.Kind)
	}
	if cfg.Source.URL != "https://ci.example.com" {
		t.Errorf("expected url from env, got %q", cfg.Source.URL)
	}
	if cfg.Logs.PageSize != 75 {
		t.Errorf("expected page size 75, got %d", cfg.Logs.PageSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level %q, got %q", "warn", cfg.Log.Level)
	}
}

func TestEnvOverrideInvalidIntIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RUNLOGS_PAGE_SIZE", "lots")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Logs.PageSize != 200 {
		t.Errorf("expected default page size kept, got %d", cfg.Logs.PageSize)
	}
}

func TestDiscoveryChain(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	userDir := filepath.Join(home, ".config", "runlogs")
	os.MkdirAll(userDir, 0755)
	os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("logs:\n  page_size: 33\n"), 0644)

	project := t.TempDir()
	cfg, err := LoadFrom(project)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Logs.PageSize != 33 {
		t.Errorf("expected user config page size 33, got %d", cfg.Logs.PageSize)
	}

	os.WriteFile(filepath.Join(project, "runlogs.yaml"), []byte("logs:\n  page_size: 44\n"), 0644)
	cfg, err = LoadFrom(project)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Logs.PageSize != 44 {
		t.Errorf("expected project config to win, got %d", cfg.Logs.PageSize)
	}
}

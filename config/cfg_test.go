package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	m := cfg.Markup
	if m.Container != "fscode" {
		t.Errorf("Container = %q, want fscode", m.Container)
	}
	if m.Lang != "en" {
		t.Errorf("Lang = %q, want en", m.Lang)
	}
	if m.TagSet != "wiki" {
		t.Errorf("TagSet = %q, want wiki", m.TagSet)
	}
	if IsYes(m.Wiki.Enable) {
		t.Error("wiki mode should be off by default")
	}
	if len(m.ForbiddenLinks) == 0 {
		t.Error("expected default forbidden link patterns")
	}
	if cfg.Output.Extension != ".html" {
		t.Errorf("Extension = %q, want .html", cfg.Output.Extension)
	}
	if cfg.Output.NameTemplate != "" {
		t.Errorf("NameTemplate = %q, want empty", cfg.Output.NameTemplate)
	}
	if !strings.HasSuffix(cfg.Logging.FileLogger.Destination, "fsc.log") {
		t.Errorf("unexpected log destination %q", cfg.Logging.FileLogger.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	configPath := writeConfig(t, `version: 1
markup:
  lang: ru
  tag_set: forum
  forbidden_links: ["https?://bad\\..*"]
  wiki:
    enable: "YES"
    providers:
      - name: ""
        base_url: "https://example.org/wiki/"
        pages: ["Main_Page"]
      - name: "other"
        base_url: "https://other.example.org/"
output:
  name_template: "{{ .Name | upper }}"
  transliterate: true
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Markup.Lang != "ru" || cfg.Markup.TagSet != "forum" {
		t.Errorf("unexpected markup settings %+v", cfg.Markup)
	}
	// values absent from file keep defaults
	if cfg.Markup.Container != "fscode" {
		t.Errorf("Container = %q, want default", cfg.Markup.Container)
	}
	if len(cfg.Markup.ForbiddenLinks) != 1 || cfg.Markup.ForbiddenLinks[0] != `https?://bad\..*` {
		t.Errorf("ForbiddenLinks = %v", cfg.Markup.ForbiddenLinks)
	}
	if !IsYes(cfg.Markup.Wiki.Enable) {
		t.Error("expected wiki mode on")
	}
	if len(cfg.Markup.Wiki.Providers) != 2 || cfg.Markup.Wiki.Providers[1].Name != "other" {
		t.Errorf("Providers = %+v", cfg.Markup.Wiki.Providers)
	}
	// template must not be expanded at load time
	if cfg.Output.NameTemplate != "{{ .Name | upper }}" {
		t.Errorf("NameTemplate = %q", cfg.Output.NameTemplate)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file logger mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nmarkup:\n  lang: en\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad tag set", "version: 1\nmarkup:\n  tag_set: blog\n"},
		{"bad wiki flag", "version: 1\nmarkup:\n  wiki:\n    enable: maybe\n"},
		{"bad language", "version: 1\nmarkup:\n  lang: \"not a language\"\n"},
		{"bad extension", "version: 1\noutput:\n  extension: html\n"},
		{"provider without url", "version: 1\nmarkup:\n  wiki:\n    providers:\n      - name: x\n"},
		{"duplicate providers", "version: 1\nmarkup:\n  wiki:\n    providers:\n      - name: x\n        base_url: /a/\n      - name: x\n        base_url: /b/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Markup.Wiki.Providers = []WikiProviderConfig{{Name: "w", BaseURL: "/w/", Pages: []string{"A"}}}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// Verify we can load it back
	cfg2, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if len(cfg2.Markup.Wiki.Providers) != 1 || cfg2.Markup.Wiki.Providers[0].Pages[0] != "A" {
		t.Errorf("providers lost after dump/load: %+v", cfg2.Markup.Wiki.Providers)
	}
}

func TestIsYes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"YES", true},
		{"yes", true},
		{" True ", true},
		{"NO", false},
		{"FALSE", false},
		{"", false},
		{"1", false},
	}

	for _, tt := range tests {
		if got := IsYes(tt.in); got != tt.want {
			t.Errorf("IsYes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	// version: 99 will fail validation (validate:"eq=1").
	data := []byte("version: 99\n")
	cfg := &Config{}

	_, err := unmarshalConfig(data, cfg, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error (errors.Unwrap non-nil), got bare error: %v", err)
	}
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName(""); got != badFileName {
		t.Errorf("CleanFileName(\"\") = %q, want %q", got, badFileName)
	}
	if got := CleanFileName("a" + string(os.PathSeparator) + "b"); got != "ab" {
		t.Errorf("path separator is not removed: %q", got)
	}

	long := strings.Repeat("я", 200) // 400 bytes
	got := CleanFileName(long)
	if len(got) > maxNameBytes {
		t.Errorf("name is not limited: %d bytes", len(got))
	}
	if !strings.HasPrefix(long, got) || len(got)%2 != 0 {
		t.Errorf("name is cut in the middle of a rune: %q", got)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"ratingpage/internal/payload"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
notion:
  database_id: "db123"
  locale: "en"
  properties:
    score: "Rating"
  headings:
    tags_description: "Where to cite it"
logging:
  level: "debug"
  format: "json"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Notion.DatabaseID != "db123" {
		t.Errorf("Expected DatabaseID 'db123', got '%s'", cfg.Notion.DatabaseID)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level 'debug', got '%s'", cfg.Logging.Level)
	}

	schema, err := cfg.Schema()
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}

	if schema.Properties.Score != "Rating" {
		t.Errorf("Expected score property 'Rating', got '%s'", schema.Properties.Score)
	}

	if schema.Properties.Title != "Name" {
		t.Errorf("Expected English title preset 'Name', got '%s'", schema.Properties.Title)
	}

	if schema.Headings.TagsDescription != "Where to cite it" {
		t.Errorf("Expected heading override, got '%s'", schema.Headings.TagsDescription)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "notion:\n  database_id: abc\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Notion.Locale != DefaultLocale {
		t.Errorf("Expected default locale, got '%s'", cfg.Notion.Locale)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Expected default logging, got %+v", cfg.Logging)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: verbose\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestDefault_MatchesOriginalSchema(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}

	schema, err := cfg.Schema()
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}

	if schema != payload.DefaultSchema() {
		t.Errorf("Expected default schema, got %+v", schema)
	}
}

func TestConfig_Schema_Locales(t *testing.T) {
	tests := []struct {
		locale    string
		wantTitle string
	}{
		{"", payload.DefaultTitleProperty},
		{"ru", payload.DefaultTitleProperty},
		{"ru-RU", payload.DefaultTitleProperty},
		{"en", "Name"},
		{"en-GB", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			cfg := Default()
			cfg.Notion.Locale = tt.locale

			schema, err := cfg.Schema()
			if err != nil {
				t.Fatalf("Schema failed: %v", err)
			}

			if schema.Properties.Title != tt.wantTitle {
				t.Errorf("Title = %s, want %s", schema.Properties.Title, tt.wantTitle)
			}
		})
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "Unparseable locale",
			mutate:  func(c *Config) { c.Notion.Locale = "not a locale!" },
			wantErr: ErrUnknownLocale,
		},
		{
			name:    "Unsupported locale",
			mutate:  func(c *Config) { c.Notion.Locale = "ja" },
			wantErr: ErrUnknownLocale,
		},
		{
			name:    "Blank property",
			mutate:  func(c *Config) { c.Notion.Properties.Title = "   " },
			wantErr: ErrEmptyPropertyName,
		},
		{
			name:    "Duplicate property",
			mutate:  func(c *Config) { c.Notion.Properties.Recommendation = payload.DefaultDescriptionProperty },
			wantErr: ErrDuplicatePropertyName,
		},
		{
			name:    "Blank heading",
			mutate:  func(c *Config) { c.Notion.Headings.Justification = " " },
			wantErr: ErrEmptyHeading,
		},
		{
			name:    "Invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "Invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Notion.Properties.Tags = " "
	cfg.Notion.Headings.TagsDescription = " "
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if got := len(multierr.Errors(err)); got != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", got, err)
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	cfg := Default()
	cfg.Notion.DatabaseID = "db-saved"

	resolved, err := cfg.Resolved()
	if err != nil {
		t.Fatalf("Resolved failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := resolved.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !strings.Contains(string(data), payload.DefaultScoreProperty) {
		t.Errorf("Expected dumped config to contain resolved score property, got:\n%s", data)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if reloaded.Notion.DatabaseID != "db-saved" {
		t.Errorf("Expected DatabaseID 'db-saved', got '%s'", reloaded.Notion.DatabaseID)
	}
}

func TestConfig_String(t *testing.T) {
	s := Default().String()
	if !strings.Contains(s, "Locale: ru") {
		t.Errorf("Unexpected String() output: %s", s)
	}
}

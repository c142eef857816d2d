// Package config provides configuration management for the rating converter.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"ratingpage/internal/payload"
)

// Configuration validation errors.
var (
	ErrUnknownLocale         = errors.New("notion.locale is not supported")
	ErrEmptyPropertyName     = errors.New("notion.properties entries must not be blank")
	ErrDuplicatePropertyName = errors.New("notion.properties entries must be unique")
	ErrEmptyHeading          = errors.New("notion.headings entries must not be blank")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat      = errors.New("logging.format must be 'text' or 'json'")
)

// DefaultLocale is the locale of the original rating database.
const DefaultLocale = "ru"

// Config represents the complete converter configuration.
type Config struct {
	Notion  NotionConfig  `yaml:"notion"`
	Logging LoggingConfig `yaml:"logging"`
}

// NotionConfig describes the target database. Blank property names and
// headings fall back to the locale preset.
type NotionConfig struct {
	DatabaseID string                `yaml:"database_id,omitempty"`
	Locale     string                `yaml:"locale"`
	Properties payload.PropertyNames `yaml:"properties"`
	Headings   payload.Headings      `yaml:"headings"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// presets holds the built-in schemas keyed by locale. The first entry is the
// fallback of the matcher.
var presets = []struct {
	tag    language.Tag
	schema payload.Schema
}{
	{tag: language.Russian, schema: payload.DefaultSchema()},
	{tag: language.English, schema: payload.Schema{
		Properties: payload.PropertyNames{
			Title:          "Name",
			Description:    "Description",
			Score:          "Gemini score",
			Recommendation: "Recommendations",
			Tags:           "Sections",
		},
		Headings: payload.Headings{
			Justification:   "Why choose this source",
			TagsDescription: "Where this source can be used",
		},
	}},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(presets))
	for _, p := range presets {
		tags = append(tags, p.tag)
	}

	return language.NewMatcher(tags)
}()

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Notion: NotionConfig{
			Locale: DefaultLocale,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := c.Dump()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Dump serializes the configuration to YAML.
func (c *Config) Dump() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return data, nil
}

// Validate validates the configuration and reports every problem found.
func (c *Config) Validate() error {
	var err error

	schema, localeErr := c.Schema()
	if localeErr != nil {
		err = multierr.Append(err, localeErr)
	} else {
		err = multierr.Append(err, validateSchema(schema))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		err = multierr.Append(err, ErrInvalidLogLevel)
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		err = multierr.Append(err, ErrInvalidLogFormat)
	}

	return err
}

// Schema resolves the locale preset and applies explicit overrides.
func (c *Config) Schema() (payload.Schema, error) {
	schema, err := presetFor(c.Notion.Locale)
	if err != nil {
		return payload.Schema{}, err
	}

	p := c.Notion.Properties
	override(&schema.Properties.Title, p.Title)
	override(&schema.Properties.Description, p.Description)
	override(&schema.Properties.Score, p.Score)
	override(&schema.Properties.Recommendation, p.Recommendation)
	override(&schema.Properties.Tags, p.Tags)

	h := c.Notion.Headings
	override(&schema.Headings.Justification, h.Justification)
	override(&schema.Headings.TagsDescription, h.TagsDescription)

	return schema, nil
}

// Resolved returns a copy with the schema written out in full.
func (c *Config) Resolved() (*Config, error) {
	schema, err := c.Schema()
	if err != nil {
		return nil, err
	}

	out := *c
	out.Notion.Properties = schema.Properties
	out.Notion.Headings = schema.Headings

	return &out, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Locale: %s, DatabaseID: %q, LogLevel: %s}",
		c.Notion.Locale,
		c.Notion.DatabaseID,
		c.Logging.Level,
	)
}

func presetFor(locale string) (payload.Schema, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return payload.Schema{}, fmt.Errorf("%w: %q: %w", ErrUnknownLocale, locale, err)
	}

	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return payload.Schema{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	return presets[idx].schema, nil
}

func validateSchema(schema payload.Schema) error {
	var err error

	names := []struct {
		key   string
		value string
	}{
		{"title", schema.Properties.Title},
		{"description", schema.Properties.Description},
		{"score", schema.Properties.Score},
		{"recommendation", schema.Properties.Recommendation},
		{"tags", schema.Properties.Tags},
	}

	seen := make(map[string]string, len(names))
	for _, n := range names {
		if strings.TrimSpace(n.value) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrEmptyPropertyName, n.key))
			continue
		}

		if prev, ok := seen[n.value]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s and %s are both %q", ErrDuplicatePropertyName, prev, n.key, n.value))
			continue
		}

		seen[n.value] = n.key
	}

	if strings.TrimSpace(schema.Headings.Justification) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: justification", ErrEmptyHeading))
	}

	if strings.TrimSpace(schema.Headings.TagsDescription) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: tags_description", ErrEmptyHeading))
	}

	return err
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

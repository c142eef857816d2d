// Package converter chains rating parsing and page payload construction.
package converter

import (
	"errors"
	"fmt"

	"ratingpage/internal/logger"
	"ratingpage/internal/models"
	"ratingpage/internal/parser"
	"ratingpage/internal/payload"
)

// ErrMissingDatabaseID is returned when no target database is given.
var ErrMissingDatabaseID = errors.New("database id is required")

// Converter turns XML ratings into page payloads.
type Converter struct {
	builder *payload.Builder
	logger  *logger.Logger
}

// NewConverter creates a new converter for the given schema.
func NewConverter(schema payload.Schema, log *logger.Logger) *Converter {
	if log == nil {
		log = logger.Discard()
	}

	return &Converter{
		builder: payload.NewBuilder(schema),
		logger:  log,
	}
}

// Result holds the parsed rating together with the page built from it.
type Result struct {
	Rating models.Rating
	Page   payload.Page
}

// Convert parses xmlText and builds the page payload for databaseID.
func (c *Converter) Convert(xmlText, databaseID string) (*Result, error) {
	if databaseID == "" {
		return nil, ErrMissingDatabaseID
	}

	// 1. Parse the rating
	rating, err := parser.Parse(xmlText)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	c.logger.Debug("Parsed rating",
		"name", rating.Name,
		"score", rating.Score,
		"tags", len(rating.Tags),
	)

	// 2. Build the payload
	page := c.builder.Build(rating, databaseID)

	c.logger.Debug("Built page payload",
		"database_id", databaseID,
		"properties", len(page.Properties),
		"blocks", len(page.Children),
	)

	return &Result{Rating: rating, Page: page}, nil
}

// Package payload builds Notion page-creation payloads from parsed ratings.
package payload

import (
	"encoding/json"
	"fmt"

	"ratingpage/internal/models"
)

// Block and rich text type names used by the Notion API.
const (
	ObjectBlock        = "block"
	BlockTypeHeading1  = "heading_1"
	BlockTypeParagraph = "paragraph"
	RichTextTypeText   = "text"
)

// Page represents a page-creation request body.
type Page struct {
	Properties map[string]Property `json:"properties"`
	Parent     Parent              `json:"parent"`
	Children   []Block             `json:"children"`
}

// Parent references the database a page is created under.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Text holds literal text content.
type Text struct {
	Content string `json:"content"`
}

// RichText represents a rich text fragment. Property values omit the type,
// block bodies carry it.
type RichText struct {
	Type string `json:"type,omitempty"`
	Text Text   `json:"text"`
}

// Property is a typed database property value.
type Property interface {
	propertyType() string
}

// TitleProperty represents a title property value.
type TitleProperty struct {
	Title []RichText `json:"title"`
}

// RichTextProperty represents a rich_text property value.
type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

// NumberProperty represents a number property value.
type NumberProperty struct {
	Number int `json:"number"`
}

// MultiSelectProperty represents a multi_select property value.
type MultiSelectProperty struct {
	MultiSelect []models.Tag `json:"multi_select"`
}

func (TitleProperty) propertyType() string       { return "title" }
func (RichTextProperty) propertyType() string    { return "rich_text" }
func (NumberProperty) propertyType() string      { return "number" }
func (MultiSelectProperty) propertyType() string { return "multi_select" }

// TypeOf returns the Notion property type name of p.
func TypeOf(p Property) string {
	return p.propertyType()
}

// TextBlock is the body shared by heading and paragraph blocks.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// Block represents a content block in the page body.
type Block struct {
	Heading1  *TextBlock `json:"heading_1,omitempty"`
	Paragraph *TextBlock `json:"paragraph,omitempty"`
	Object    string     `json:"object"`
	Type      string     `json:"type"`
}

// PlainText returns the concatenated text content of the block.
func (b Block) PlainText() string {
	var body *TextBlock

	switch b.Type {
	case BlockTypeHeading1:
		body = b.Heading1
	case BlockTypeParagraph:
		body = b.Paragraph
	}

	if body == nil {
		return ""
	}

	var s string
	for _, rt := range body.RichText {
		s += rt.Text.Content
	}

	return s
}

// Map returns the page as a generic nested mapping, the form expected by
// clients that assemble request bodies dynamically.
func (p Page) Map() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}

	return m, nil
}

package payload

import (
	"ratingpage/internal/models"
)

// Default property names and headings of the rating database.
const (
	DefaultTitleProperty          = "Название"
	DefaultDescriptionProperty    = "Описание"
	DefaultScoreProperty          = "Оценка Gemini"
	DefaultRecommendationProperty = "Рекомендации"
	DefaultTagsProperty           = "Для каких разделов?"

	DefaultJustificationHeading   = "Почему нужно выбрать именно этот источник"
	DefaultTagsDescriptionHeading = "В каких разделах его можно использовать"
)

// PropertyNames maps rating fields to database property names.
type PropertyNames struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Score          string `yaml:"score"`
	Recommendation string `yaml:"recommendation"`
	Tags           string `yaml:"tags"`
}

// Headings holds the fixed section headings of the page body.
type Headings struct {
	Justification   string `yaml:"justification"`
	TagsDescription string `yaml:"tags_description"`
}

// Schema describes the target database layout.
type Schema struct {
	Properties PropertyNames `yaml:"properties"`
	Headings   Headings      `yaml:"headings"`
}

// DefaultSchema returns the schema of the original rating database.
func DefaultSchema() Schema {
	return Schema{
		Properties: PropertyNames{
			Title:          DefaultTitleProperty,
			Description:    DefaultDescriptionProperty,
			Score:          DefaultScoreProperty,
			Recommendation: DefaultRecommendationProperty,
			Tags:           DefaultTagsProperty,
		},
		Headings: Headings{
			Justification:   DefaultJustificationHeading,
			TagsDescription: DefaultTagsDescriptionHeading,
		},
	}
}

// Builder converts ratings into page payloads. It holds no mutable state and
// is safe for concurrent use.
type Builder struct {
	schema Schema
}

// NewBuilder creates a builder for the given schema.
func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema}
}

// Schema returns the schema the builder was created with.
func (b *Builder) Schema() Schema {
	return b.schema
}

// Build creates a page payload for the rating under the given database.
func Build(r models.Rating, databaseID string) Page {
	return NewBuilder(DefaultSchema()).Build(r, databaseID)
}

// Build creates a page payload for the rating under the given database.
func (b *Builder) Build(r models.Rating, databaseID string) Page {
	names := b.schema.Properties

	return Page{
		Parent: Parent{DatabaseID: databaseID},
		Properties: map[string]Property{
			names.Title:          NewTitle(r.Name),
			names.Description:    NewRichText(r.Description),
			names.Score:          NewNumber(r.Score),
			names.Recommendation: NewRichText(r.Recommendation),
			names.Tags:           NewMultiSelect(r.Tags),
		},
		Children: []Block{
			HeadingBlock(b.schema.Headings.Justification),
			ParagraphBlock(r.Justification),
			HeadingBlock(b.schema.Headings.TagsDescription),
			ParagraphBlock(r.TagsDescription),
		},
	}
}

// NewTitle creates a title property holding content.
func NewTitle(content string) TitleProperty {
	return TitleProperty{Title: []RichText{{Text: Text{Content: content}}}}
}

// NewRichText creates a rich_text property holding content.
func NewRichText(content string) RichTextProperty {
	return RichTextProperty{RichText: []RichText{{Text: Text{Content: content}}}}
}

// NewNumber creates a number property.
func NewNumber(n int) NumberProperty {
	return NumberProperty{Number: n}
}

// NewMultiSelect creates a multi_select property from tags. The tags are
// copied so the page never aliases the rating.
func NewMultiSelect(tags []models.Tag) MultiSelectProperty {
	options := make([]models.Tag, len(tags))
	copy(options, tags)

	return MultiSelectProperty{MultiSelect: options}
}

// HeadingBlock creates a heading_1 block.
func HeadingBlock(content string) Block {
	return Block{
		Object:   ObjectBlock,
		Type:     BlockTypeHeading1,
		Heading1: textBlock(content),
	}
}

// ParagraphBlock creates a paragraph block.
func ParagraphBlock(content string) Block {
	return Block{
		Object:    ObjectBlock,
		Type:      BlockTypeParagraph,
		Paragraph: textBlock(content),
	}
}

func textBlock(content string) *TextBlock {
	return &TextBlock{
		RichText: []RichText{{Type: RichTextTypeText, Text: Text{Content: content}}},
	}
}

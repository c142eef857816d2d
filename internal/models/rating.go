// Package models defines data structures shared by the parser and the payload builder.
package models

// Tag is a single multi-select option attached to a rating.
type Tag struct {
	Name string `json:"name"`
}

// Rating represents one evaluated source extracted from an XML document.
// Values are never mutated after parsing; consumers only read them.
type Rating struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Justification   string `json:"justification"`
	TagsDescription string `json:"tagsDescription"`
	Recommendation  string `json:"recommendation"`
	Tags            []Tag  `json:"tags"`
	Score           int    `json:"score"`
}

// TagNames returns the plain tag names in input order.
func (r Rating) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		names = append(names, tag.Name)
	}

	return names
}

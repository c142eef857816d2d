// Package parser extracts rating records from the XML fragments produced by the evaluator.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"ratingpage/internal/models"
)

// Element names expected directly under the document root.
const (
	TagName            = "name"
	TagDescription     = "description"
	TagJustification   = "justification"
	TagScore           = "score"
	TagTags            = "Tags"
	TagTagsDescription = "Tags_discription"
	TagRecommendation  = "recommendation"

	tagSeparator = ";"
)

// Parser errors.
var (
	ErrMalformedInput = errors.New("malformed xml input")
	ErrInvalidScore   = errors.New("invalid score")
)

// Parse converts raw XML text into a rating. Missing text elements resolve to
// empty strings; a missing or non-integer score is an error.
func Parse(xmlText string) (models.Rating, error) {
	root, err := readRoot(xmlText)
	if err != nil {
		return models.Rating{}, err
	}

	score, err := parseScore(root)
	if err != nil {
		return models.Rating{}, err
	}

	return models.Rating{
		Name:            childText(root, TagName),
		Description:     childText(root, TagDescription),
		Justification:   childText(root, TagJustification),
		Score:           score,
		Tags:            SplitTags(childText(root, TagTags)),
		TagsDescription: childText(root, TagTagsDescription),
		Recommendation:  childText(root, TagRecommendation),
	}, nil
}

// SplitTags splits a semicolon separated list into tags, dropping blank
// fragments. The result is never nil.
func SplitTags(text string) []models.Tag {
	tags := []models.Tag{}

	for fragment := range strings.SplitSeq(text, tagSeparator) {
		name := strings.TrimSpace(fragment)
		if name == "" {
			continue
		}

		tags = append(tags, models.Tag{Name: name})
	}

	return tags
}

func readRoot(xmlText string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformedInput)
	}

	if n := len(doc.ChildElements()); n != 1 {
		return nil, fmt.Errorf("%w: expected a single root element, found %d", ErrMalformedInput, n)
	}

	for _, token := range doc.Child {
		if cd, ok := token.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return nil, fmt.Errorf("%w: text outside of root element", ErrMalformedInput)
		}
	}

	return root, nil
}

func parseScore(root *etree.Element) (int, error) {
	if findChild(root, TagScore) == nil {
		return 0, fmt.Errorf("%w: <%s> element is missing", ErrInvalidScore, TagScore)
	}

	text := childText(root, TagScore)
	if text == "" {
		return 0, fmt.Errorf("%w: <%s> element is empty", ErrInvalidScore, TagScore)
	}

	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidScore, text)
	}

	return score, nil
}

// findChild returns the first direct child whose qualified name equals tag.
// Unlike etree's SelectElement it does not treat a missing prefix as a wildcard.
func findChild(root *etree.Element, tag string) *etree.Element {
	for _, child := range root.ChildElements() {
		if child.FullTag() == tag {
			return child
		}
	}

	return nil
}

func childText(root *etree.Element, tag string) string {
	el := findChild(root, tag)
	if el == nil {
		return ""
	}

	return strings.TrimSpace(el.Text())
}

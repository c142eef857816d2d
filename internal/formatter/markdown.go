// Package formatter renders ratings as human readable markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"ratingpage/internal/models"
)

const (
	minColumnWidth = 3
	ellipsis       = "..."
)

// FormatRating renders the rating as a two column markdown table. Values wider
// than maxWidth display cells are truncated; maxWidth <= 0 disables truncation.
func FormatRating(r models.Rating, maxWidth int) string {
	rows := [][]string{
		{"Field", "Value"},
		{"name", r.Name},
		{"description", r.Description},
		{"justification", r.Justification},
		{"score", strconv.Itoa(r.Score)},
		{"tags", strings.Join(r.TagNames(), ", ")},
		{"tags_description", r.TagsDescription},
		{"recommendation", r.Recommendation},
	}

	for _, row := range rows[1:] {
		row[1] = cell(row[1], maxWidth)
	}

	return strings.Join(FormatTable(rows), "\n")
}

// FormatTable aligns rows into a markdown table using display width. The first
// row is the header; a separator row is inserted after it.
func FormatTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < minColumnWidth {
			colWidths[i] = minColumnWidth
		}
	}

	result := make([]string, 0, len(rows)+1)
	result = append(result, formatRow(rows[0], colWidths))

	separator := make([]string, colCount)
	for i, w := range colWidths {
		separator[i] = strings.Repeat("-", w)
	}

	result = append(result, formatRow(separator, colWidths))

	for _, row := range rows[1:] {
		result = append(result, formatRow(row, colWidths))
	}

	return result
}

func formatRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

// cell flattens whitespace, escapes pipes and truncates to maxWidth.
func cell(value string, maxWidth int) string {
	value = strings.Join(strings.Fields(value), " ")
	value = strings.ReplaceAll(value, "|", `\|`)

	if maxWidth > 0 && runewidth.StringWidth(value) > maxWidth {
		value = runewidth.Truncate(value, maxWidth, ellipsis)
	}

	return value
}

// Package textutil cleans the HTML-flavored description texts the catalog
// delivers for display in plain-text contexts.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	linkPattern = regexp.MustCompile(`https?://[^\s]+`)
)

// RemoveTags strips markup tags after unescaping HTML entities.
func RemoveTags(input string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(input), "")
}

// RemoveLinks strips bare URLs.
func RemoveLinks(input string) string {
	return linkPattern.ReplaceAllString(input, "")
}

// ReduceToLength shortens text to at most length bytes on word boundaries.
func ReduceToLength(input string, length int) string {
	var builder strings.Builder
	totalLength := 0

	for i, word := range strings.Split(input, " ") {
		if totalLength+len(word) > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
			totalLength++
		}
		builder.WriteString(word)
		totalLength += len(word)
	}
	return builder.String()
}

// CleanAndReduce strips tags and links, collapses whitespace, then shortens
// to length.
func CleanAndReduce(input string, length int) string {
	cleaned := strings.Join(strings.Fields(RemoveLinks(RemoveTags(input))), " ")
	return ReduceToLength(cleaned, length)
}

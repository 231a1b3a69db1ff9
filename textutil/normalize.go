// Package textutil provides the lightweight text normalization used when
// preparing service descriptions for indexing. Heavy linguistic processing
// (stemming, stop words) is left to the search engine itself.
package textutil

import "strings"

// Tokens lowercases the input, collapses runs of whitespace and splits it
// into words. Empty or blank input yields an empty slice.
func Tokens(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Normalize returns the tokenized text rejoined with single spaces.
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

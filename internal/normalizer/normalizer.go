// Package normalizer reduces titles and filenames to a comparable form for Retitle.
package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// strippedChars lists every character removed during normalization.
const strippedChars = "\\`*_{}[]()>#+-.,!$"

var stripper = buildStripper()

func buildStripper() *strings.Replacer {
	pairs := make([]string, 0, len(strippedChars)*2+2)
	for _, c := range strippedChars {
		pairs = append(pairs, string(c), "")
	}
	pairs = append(pairs, "&", "and")
	return strings.NewReplacer(pairs...)
}

// Normalize converts text to its canonical comparable form.
// Text is composed to NFC first so that a decomposed sequence and its
// precomposed character strip alike. The characters in strippedChars are
// then removed, "&" becomes "and" and the result is lowercased. A final NFC
// pass recomposes marks left next to a new base. Spaces are preserved.
//
// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return norm.NFC.String(strings.ToLower(stripper.Replace(norm.NFC.String(text))))
}

// Compact normalizes text and removes all whitespace.
// This is the form a candidate filename takes before it is matched against keywords.
// Whitespace is the same set Keywords splits on, so tabs and no-break spaces
// never end up inside a candidate.
func Compact(text string) string {
	return strings.Join(strings.Fields(Normalize(text)), "")
}

// Keywords splits the normalized form of a title into its ordered keywords.
// Runs of whitespace never produce empty keywords.
func Keywords(title string) []string {
	return strings.Fields(Normalize(title))
}

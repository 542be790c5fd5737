// Package matcher decides whether a normalized filename stands for a reference title.
package matcher

// DefaultOmittedWords are keywords a shortened filename is allowed to leave out.
var DefaultOmittedWords = []string{"the"}

// Matcher performs sequential prefix-consumption matching of title keywords
// against a compacted candidate name.
type Matcher struct {
	omitted map[string]struct{}
}

// New creates a Matcher that tolerates the given omitted words.
// A nil slice selects DefaultOmittedWords; an empty non-nil slice omits nothing.
func New(omitted []string) *Matcher {
	if omitted == nil {
		omitted = DefaultOmittedWords
	}
	m := &Matcher{omitted: make(map[string]struct{}, len(omitted))}
	for _, w := range omitted {
		m.omitted[w] = struct{}{}
	}
	return m
}

var defaultMatcher = New(nil)

// Matches reports whether candidate represents the title with the given keywords,
// using DefaultOmittedWords.
func Matches(keywords []string, candidate string) bool {
	return defaultMatcher.Matches(keywords, candidate)
}

// Matches walks the keywords in order, consuming each one from the front of
// candidate. A keyword that does not match is skipped when it is an omitted
// word. Otherwise the candidate matches only if it has already been consumed
// completely, meaning it is a truncated form of the title. When every keyword
// has been processed the candidate must be fully consumed as well, so trailing
// text that belongs to no keyword is a mismatch. An empty keyword list matches
// anything and an empty candidate never matches a required keyword.
//
// Examples:
//   - ["moby", "dick"] vs "mobydick" -> true
//   - ["a", "complete", "guide", "to", "everything"] vs "acompleteguide" -> true
//   - ["the", "hobbit"] vs "hobbit" -> true
//   - ["moby", "dick"] vs "mobydicktwo" -> false
func (m *Matcher) Matches(keywords []string, candidate string) bool {
	if len(keywords) == 0 {
		return true
	}

	index := 0
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		end := index + len(keyword)
		if end <= len(candidate) && candidate[index:end] == keyword {
			index = end
			continue
		}
		if m.IsOmitted(keyword) {
			continue
		}
		return index > 0 && index == len(candidate)
	}
	return index == len(candidate)
}

// IsOmitted reports whether keyword may be missing from a candidate.
func (m *Matcher) IsOmitted(keyword string) bool {
	_, ok := m.omitted[keyword]
	return ok
}

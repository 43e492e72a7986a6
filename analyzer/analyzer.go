package analyzer

import (
	"regexp"
	"strings"
)

// Pattern is one of the fixed visual learning pattern categories.
type Pattern string

const (
	PatternComparison   Pattern = "comparison"
	PatternProcess      Pattern = "process"
	PatternHierarchy    Pattern = "hierarchy"
	PatternRelationship Pattern = "relationship"
	PatternTimeline     Pattern = "timeline"
	PatternStatistics   Pattern = "statistics"
	PatternConcept      Pattern = "concept"
)

// DefaultPattern is assigned when no trigger phrase matches at all.
const DefaultPattern = PatternConcept

// Analysis is the result of classifying a piece of content.
type Analysis struct {
	Pattern       Pattern         `json:"primary_pattern"`
	Confidence    int             `json:"confidence"`
	Matches       map[Pattern]int `json:"matches"`
	KeyConcepts   []string        `json:"key_concepts"`
	WordCount     int             `json:"word_count"`
	SentenceCount int             `json:"sentence_count"`
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Analyze classifies text into a visual pattern by counting trigger phrase
// matches per pattern. The highest count wins; ties resolve by the fixed
// priority order. Pure function, no side effects.
func Analyze(text string) Analysis {
	lower := strings.ToLower(text)

	matches := make(map[Pattern]int)
	for pattern, phrases := range table.Patterns {
		count := 0
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				count++
			}
		}
		if count > 0 {
			matches[pattern] = count
		}
	}

	best := DefaultPattern
	bestCount := 0
	for _, pattern := range table.Priority {
		if c := matches[pattern]; c > bestCount {
			best = pattern
			bestCount = c
		}
	}

	return Analysis{
		Pattern:       best,
		Confidence:    bestCount,
		Matches:       matches,
		KeyConcepts:   KeyConcepts(text),
		WordCount:     len(strings.Fields(text)),
		SentenceCount: len(sentenceSplit.Split(text, -1)),
	}
}

// importanceWords mark a term as a concept regardless of capitalization.
var importanceWords = map[string]bool{
	"important": true,
	"key":       true,
	"main":      true,
	"primary":   true,
}

// stopWords are capitalized words that carry no concept value.
var stopWords = map[string]bool{
	"The":  true,
	"This": true,
	"That": true,
	"With": true,
}

// KeyConcepts extracts up to 8 concept terms from the first five sentences:
// capitalized words longer than three characters plus a short importance list.
// First-seen order is preserved so repeated runs give identical output.
func KeyConcepts(text string) []string {
	sentences := sentenceSplit.Split(text, -1)
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}

	seen := make(map[string]bool)
	var concepts []string
	for _, sentence := range sentences {
		for _, word := range strings.Fields(sentence) {
			trimmed := strings.Trim(word, ".,!?:;\"'()")
			if len(trimmed) <= 3 {
				continue
			}
			if stopWords[trimmed] {
				continue
			}
			first := rune(trimmed[0])
			if !(first >= 'A' && first <= 'Z') && !importanceWords[strings.ToLower(trimmed)] {
				continue
			}
			if seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			concepts = append(concepts, trimmed)
			if len(concepts) == 8 {
				return concepts
			}
		}
	}
	return concepts
}

package analyzer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var patternsYAML []byte

type patternTable struct {
	Patterns map[Pattern][]string `yaml:"patterns"`
	Priority []Pattern            `yaml:"priority"`
}

// table is loaded once at startup; the trigger lists are immutable after that.
var table = mustLoadTable()

func mustLoadTable() patternTable {
	var t patternTable
	if err := yaml.Unmarshal(patternsYAML, &t); err != nil {
		panic(fmt.Sprintf("analyzer: invalid patterns.yaml: %v", err))
	}
	if len(t.Patterns) == 0 || len(t.Priority) == 0 {
		panic("analyzer: patterns.yaml must define patterns and priority")
	}
	for _, p := range t.Priority {
		if _, ok := t.Patterns[p]; !ok {
			panic(fmt.Sprintf("analyzer: priority lists unknown pattern %q", p))
		}
	}
	return t
}

// TriggerPhrases returns the configured trigger list for a pattern.
func TriggerPhrases(p Pattern) []string {
	phrases := table.Patterns[p]
	out := make([]string, len(phrases))
	copy(out, phrases)
	return out
}

// Patterns returns every known pattern in priority order.
func Patterns() []Pattern {
	out := make([]Pattern, len(table.Priority))
	copy(out, table.Priority)
	return out
}

// Package blueprint maps a script plus its detected visual pattern onto a
// structured animation plan. Entirely table-driven: durations and visual
// hints come from the embedded per-pattern templates, nothing is adaptive.
package blueprint

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"edu_video_generator/analyzer"
	"edu_video_generator/generator"
)

//go:embed templates.yaml
var templatesYAML []byte

// SceneSpec is one slot of a pattern template.
type SceneSpec struct {
	Duration float64 `yaml:"duration" json:"duration"`
	Visual   string  `yaml:"visual" json:"visual"`
}

// Template is the per-pattern animation plan shape.
type Template struct {
	MinDuration float64   `yaml:"min_duration" json:"min_duration"`
	MaxDuration float64   `yaml:"max_duration" json:"max_duration"`
	Intro       SceneSpec `yaml:"intro" json:"intro"`
	Body        SceneSpec `yaml:"body" json:"body"`
	Outro       SceneSpec `yaml:"outro" json:"outro"`
}

type templateTable struct {
	Templates map[analyzer.Pattern]Template `yaml:"templates"`
}

var table = mustLoadTemplates()

func mustLoadTemplates() templateTable {
	var t templateTable
	if err := yaml.Unmarshal(templatesYAML, &t); err != nil {
		panic(fmt.Sprintf("blueprint: invalid templates.yaml: %v", err))
	}
	for _, pattern := range analyzer.Patterns() {
		tpl, ok := t.Templates[pattern]
		if !ok {
			panic(fmt.Sprintf("blueprint: templates.yaml missing pattern %q", pattern))
		}
		for _, spec := range []SceneSpec{tpl.Intro, tpl.Body, tpl.Outro} {
			if spec.Duration < tpl.MinDuration || spec.Duration > tpl.MaxDuration {
				panic(fmt.Sprintf("blueprint: %q duration %.0fs outside range [%.0f, %.0f]",
					pattern, spec.Duration, tpl.MinDuration, tpl.MaxDuration))
			}
		}
	}
	return t
}

// TemplateFor returns the template for a pattern, defaulting like the analyzer.
func TemplateFor(pattern analyzer.Pattern) Template {
	if tpl, ok := table.Templates[pattern]; ok {
		return tpl
	}
	return table.Templates[analyzer.DefaultPattern]
}

// Scene is one entry of the animation plan.
type Scene struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Visual   string  `json:"visual"`
}

// Blueprint is the full plan consumed by the render adapter. Immutable once
// built.
type Blueprint struct {
	Pattern       analyzer.Pattern `json:"pattern"`
	Scenes        []Scene          `json:"scenes"`
	TotalDuration float64          `json:"total_duration"`
}

// SceneDurations returns the per-scene durations in order.
func (b Blueprint) SceneDurations() []float64 {
	out := make([]float64, len(b.Scenes))
	for i, s := range b.Scenes {
		out[i] = s.Duration
	}
	return out
}

// Build derives the plan: first scene takes the intro slot, last the outro,
// the rest the body slot. Deterministic for a given script and pattern.
func Build(script generator.Script, pattern analyzer.Pattern) Blueprint {
	tpl := TemplateFor(pattern)

	scenes := make([]Scene, len(script.Scenes))
	total := 0.0
	for i, text := range script.Scenes {
		spec := tpl.Body
		switch {
		case i == 0:
			spec = tpl.Intro
		case i == len(script.Scenes)-1:
			spec = tpl.Outro
		}
		scenes[i] = Scene{Index: i, Text: text, Duration: spec.Duration, Visual: spec.Visual}
		total += spec.Duration
	}

	return Blueprint{Pattern: pattern, Scenes: scenes, TotalDuration: total}
}

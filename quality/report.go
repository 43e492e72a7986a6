package quality

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a human-readable markdown document. The
// export manager converts this to HTML for the dashboard bundle.
func (r Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Video Quality Assessment Report\n\n")
	sb.WriteString(fmt.Sprintf("**Overall Rating:** %s\n\n", r.Rating))
	sb.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", r.OverallScore))

	sb.WriteString("## Metrics\n\n")
	writeMetric(&sb, "Duration", r.Duration)
	writeMetric(&sb, "Scene Structure", r.SceneStructure)
	writeMetric(&sb, "Pacing", r.Pacing)

	if len(r.Strengths) > 0 {
		sb.WriteString("## Strengths\n\n")
		for _, s := range r.Strengths {
			sb.WriteString(fmt.Sprintf("- %s\n", titleCase(s)))
		}
		sb.WriteString("\n")
	}
	if len(r.Weaknesses) > 0 {
		sb.WriteString("## Areas for Improvement\n\n")
		for _, w := range r.Weaknesses {
			sb.WriteString(fmt.Sprintf("- %s\n", titleCase(w)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	for i, rec := range r.Recommendations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
	}
	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func writeMetric(sb *strings.Builder, name string, m Metric) {
	icon := "✗"
	if m.Score >= 80 {
		icon = "✓"
	} else if m.Score >= 60 {
		icon = "⚠"
	}
	sb.WriteString(fmt.Sprintf("%s **%s**: %d/100\n\n", icon, name, m.Score))
	sb.WriteString(fmt.Sprintf("  %s\n\n", m.Message))
}

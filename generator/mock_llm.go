package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is the demo-mode client used when no API key is configured.
// It produces a deterministic scene-marked script without calling any
// external model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	topic := extractTopic(prompt.User)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scene 1: %s. An introduction to the topic and why it matters.\n\n", topic))
	sb.WriteString(fmt.Sprintf("Scene 2: The core idea behind %s, explained in plain language.\n\n", topic))
	sb.WriteString("Scene 3: A closer look at the most important detail, with a concrete example.\n\n")
	sb.WriteString("Scene 4: How the pieces fit together in practice.\n\n")
	sb.WriteString("Scene 5: Common misconceptions and how to avoid them.\n\n")
	sb.WriteString(fmt.Sprintf("Scene 6: Recap of %s and where to learn more.\n", topic))
	return sb.String(), nil
}

// extractTopic pulls the topic line back out of the user prompt so the demo
// script still reads as being about the requested subject.
func extractTopic(user string) string {
	for _, line := range strings.Split(user, "\n") {
		if after, ok := strings.CutPrefix(line, "Topic: "); ok {
			return strings.TrimSpace(after)
		}
	}
	return "the topic"
}

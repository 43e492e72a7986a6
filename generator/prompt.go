package generator

import (
	"fmt"
	"strings"

	"edu_video_generator/analyzer"
)

// patternGuidance shapes the script toward the visual pattern the analyzer
// detected, so the blueprint's layout matches what the narration describes.
var patternGuidance = map[analyzer.Pattern]string{
	analyzer.PatternComparison:   "Structure the script as a comparison: introduce both sides, contrast them point by point, then conclude which applies when.",
	analyzer.PatternProcess:      "Structure the script as an ordered process: each scene covers one step, in sequence, building on the previous step.",
	analyzer.PatternHierarchy:    "Structure the script around a hierarchy: start from the top level and descend through the layers.",
	analyzer.PatternRelationship: "Structure the script around relationships: introduce the entities first, then explain how they connect.",
	analyzer.PatternTimeline:     "Structure the script chronologically: move through the events in time order, anchoring each scene to a period.",
	analyzer.PatternStatistics:   "Structure the script around the numbers: lead with the headline figure, then break down what the data shows.",
	analyzer.PatternConcept:      "Structure the script around the core concept: define it, illustrate it with an example, then summarize.",
}

// BuildScriptPrompt produces the prompt for one script-generation call.
func BuildScriptPrompt(topic string, pattern analyzer.Pattern, sceneCount int) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write an educational video script about the topic below, split into exactly %d scenes.\n", sceneCount))
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Output exactly %d scenes, each starting on its own line with the marker \"Scene N:\".\n", sceneCount))
	sb.WriteString("- Each scene is 1-3 short sentences of narration, readable aloud in a few seconds.\n")
	if guidance, ok := patternGuidance[pattern]; ok {
		sb.WriteString("- " + guidance + "\n")
	}
	sb.WriteString("- No markdown, no stage directions, no extra commentary.\n")
	sb.WriteString(fmt.Sprintf("\nTopic: %s\n", topic))

	return Prompt{
		System: "You are an expert educational content creator who writes engaging video scripts.",
		User:   sb.String(),
	}
}

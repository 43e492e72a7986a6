package generator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sceneMarker  = regexp.MustCompile(`(?mi)^\s*scene\s+\d+\s*[:.\-]\s*`)
	numberMarker = regexp.MustCompile(`(?m)^\s*\d+\s*[.)]\s+`)
)

// SplitScenes parses raw model output into exactly target scene texts.
// It tries "Scene N:" markers first, then numbered lines, then blank-line
// paragraphs; the result is trimmed to target and padded with a filler scene
// when the model returned too few.
func SplitScenes(raw string, target int) []string {
	if target < 1 {
		target = 1
	}

	var parts []string
	switch {
	case sceneMarker.MatchString(raw):
		parts = splitOnMarker(raw, sceneMarker)
	case numberMarker.MatchString(raw):
		parts = splitOnMarker(raw, numberMarker)
	default:
		parts = strings.Split(raw, "\n\n")
	}

	scenes := make([]string, 0, target)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		scenes = append(scenes, strings.Join(strings.Fields(p), " "))
		if len(scenes) == target {
			break
		}
	}

	for len(scenes) < target {
		scenes = append(scenes, fmt.Sprintf("Scene %d: let's recap what we have covered so far.", len(scenes)+1))
	}
	return scenes
}

// splitOnMarker cuts raw at every marker occurrence and drops the prologue
// before the first marker (usually a preamble the prompt asked to omit).
func splitOnMarker(raw string, marker *regexp.Regexp) []string {
	locs := marker.FindAllStringIndex(raw, -1)
	parts := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		parts = append(parts, raw[loc[1]:end])
	}
	return parts
}

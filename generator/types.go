package generator

import (
	"strings"

	"edu_video_generator/analyzer"
)

// Script is the ordered scene narration for one video. It is immutable once
// produced; UsedFallback marks that the scenes came from the static fallback
// table instead of the model.
type Script struct {
	Topic          string           `json:"topic"`
	Pattern        analyzer.Pattern `json:"pattern"`
	Scenes         []string         `json:"scenes"`
	UsedFallback   bool             `json:"used_fallback"`
	FallbackReason string           `json:"fallback_reason,omitempty"`
}

// Text joins the scenes into one readable block.
func (s Script) Text() string {
	return strings.Join(s.Scenes, "\n\n")
}

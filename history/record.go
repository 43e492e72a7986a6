package history

import (
	"time"

	"edu_video_generator/analyzer"
	"edu_video_generator/blueprint"
	"edu_video_generator/generator"
	"edu_video_generator/quality"
)

// Record aggregates everything one pipeline run produced. It is assembled
// once at the end of a successful run and never mutated afterwards; a run
// that fails before assessment leaves no record at all.
type Record struct {
	ID             string              `json:"id"`
	Topic          string              `json:"topic"`
	Pattern        analyzer.Pattern    `json:"pattern"`
	UsedFallback   bool                `json:"used_fallback"`
	FallbackReason string              `json:"fallback_reason,omitempty"`
	Analysis       analyzer.Analysis   `json:"analysis"`
	Script         generator.Script    `json:"script"`
	Blueprint      blueprint.Blueprint `json:"blueprint"`
	Quality        quality.Report      `json:"quality"`
	VideoPath      string              `json:"video_path"`
	VideoDuration  float64             `json:"video_duration"`
	ExportPath     string              `json:"export_path,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

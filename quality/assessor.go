// Package quality scores a rendered video against fixed target ranges.
// Fully deterministic: the same duration and scene durations always produce
// the same report.
package quality

import (
	"fmt"
	"math"
)

// Fixed scoring windows. The ideal window scores 100; scores decay linearly
// to 50 at the hard bound and keep shrinking beyond it, so moving further
// from the ideal never raises a score.
const (
	durationIdealMin = 30.0
	durationIdealMax = 120.0
	durationHardMin  = 10.0
	durationHardMax  = 300.0

	sceneIdealMin = 3.0
	sceneIdealMax = 8.0
	sceneHardMin  = 2.0
	sceneHardMax  = 15.0

	pacingIdealMin = 3.0
	pacingIdealMax = 8.0
	pacingHardMin  = 1.0
	pacingHardMax  = 15.0
)

// Rating thresholds over the overall score.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingNeedsWork = "Needs Improvement"
)

// Metric is one scored dimension of the video.
type Metric struct {
	Score   int    `json:"score"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Report is the complete quality assessment for one generated video.
type Report struct {
	OverallScore    int      `json:"overall_score"`
	Rating          string   `json:"rating"`
	Duration        Metric   `json:"duration"`
	SceneStructure  Metric   `json:"scene_structure"`
	Pacing          Metric   `json:"pacing"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Assess scores the realized video duration, the scene count, and the average
// pacing, then aggregates them into an overall score in [0, 100].
func Assess(videoDuration float64, sceneDurations []float64) Report {
	sceneCount := len(sceneDurations)

	var r Report
	r.Duration = assessDuration(videoDuration)
	r.SceneStructure = assessSceneCount(sceneCount)
	r.Pacing = assessPacing(videoDuration, sceneCount)

	r.OverallScore = (r.Duration.Score + r.SceneStructure.Score + r.Pacing.Score) / 3
	r.Rating = ratingFor(r.OverallScore)

	for _, entry := range []struct {
		name string
		m    Metric
	}{
		{"duration", r.Duration},
		{"scene structure", r.SceneStructure},
		{"pacing", r.Pacing},
	} {
		if entry.m.Score >= 80 {
			r.Strengths = append(r.Strengths, entry.name)
		} else if entry.m.Score < 60 {
			r.Weaknesses = append(r.Weaknesses, entry.name)
		}
	}

	r.Recommendations = recommend(r)
	return r
}

func ratingFor(score int) string {
	switch {
	case score >= 85:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	default:
		return RatingNeedsWork
	}
}

// rangeScore is the shared decay curve: 100 inside [idealLo, idealHi],
// linear down to 50 at the hard bound, then proportional shrink beyond it.
// Monotonically non-increasing as x moves away from the ideal window.
func rangeScore(x, hardLo, idealLo, idealHi, hardHi float64) int {
	var score float64
	switch {
	case x >= idealLo && x <= idealHi:
		score = 100
	case x < idealLo && x >= hardLo:
		score = 50 + 50*(x-hardLo)/(idealLo-hardLo)
	case x < hardLo:
		if x <= 0 {
			return 0
		}
		score = 50 * x / hardLo
	case x > idealHi && x <= hardHi:
		score = 50 + 50*(hardHi-x)/(hardHi-idealHi)
	default: // x > hardHi
		score = 50 * hardHi / x
	}
	return int(math.Round(score))
}

func assessDuration(duration float64) Metric {
	score := rangeScore(duration, durationHardMin, durationIdealMin, durationIdealMax, durationHardMax)
	switch {
	case duration < durationIdealMin:
		return Metric{score, "too_short", fmt.Sprintf("Video is too short (%.1fs). Recommended: %.0f-%.0fs", duration, durationIdealMin, durationIdealMax)}
	case duration > durationIdealMax:
		return Metric{score, "too_long", fmt.Sprintf("Video is too long (%.1fs). Consider breaking into parts", duration)}
	default:
		return Metric{score, "optimal", fmt.Sprintf("Duration is optimal (%.1fs)", duration)}
	}
}

func assessSceneCount(count int) Metric {
	score := rangeScore(float64(count), sceneHardMin, sceneIdealMin, sceneIdealMax, sceneHardMax)
	switch {
	case float64(count) < sceneIdealMin:
		return Metric{score, "too_few", fmt.Sprintf("Too few scenes (%d). Add more visual variety", count)}
	case float64(count) > sceneIdealMax:
		return Metric{score, "too_many", fmt.Sprintf("Too many scenes (%d). May feel rushed", count)}
	default:
		return Metric{score, "optimal", fmt.Sprintf("Scene count is optimal (%d scenes)", count)}
	}
}

func assessPacing(duration float64, sceneCount int) Metric {
	if sceneCount == 0 {
		return Metric{0, "unknown", "Cannot assess pacing without scenes"}
	}
	pacing := duration / float64(sceneCount)
	score := rangeScore(pacing, pacingHardMin, pacingIdealMin, pacingIdealMax, pacingHardMax)
	switch {
	case pacing < pacingIdealMin:
		return Metric{score, "too_fast", fmt.Sprintf("Pacing is too fast (%.1fs per scene). Learners may struggle", pacing)}
	case pacing > pacingIdealMax:
		return Metric{score, "too_slow", fmt.Sprintf("Pacing is slow (%.1fs per scene). May lose attention", pacing)}
	default:
		return Metric{score, "optimal", fmt.Sprintf("Pacing is optimal (%.1fs per scene)", pacing)}
	}
}

// recommend fires a fixed recommendation for every metric scoring below 70.
// Multiple recommendations can fire independently.
func recommend(r Report) []string {
	var recs []string
	if r.Duration.Score < 70 {
		switch r.Duration.Status {
		case "too_short":
			recs = append(recs, "Add more explanatory scenes to increase duration")
		case "too_long":
			recs = append(recs, "Consider splitting into multiple shorter videos")
		}
	}
	if r.SceneStructure.Score < 70 {
		switch r.SceneStructure.Status {
		case "too_few":
			recs = append(recs, "Add more visual variety with additional scenes")
		case "too_many":
			recs = append(recs, "Consolidate similar scenes for better flow")
		}
	}
	if r.Pacing.Score < 70 {
		switch r.Pacing.Status {
		case "too_fast":
			recs = append(recs, "Slow down transitions and add pause points")
		case "too_slow":
			recs = append(recs, "Reduce scene duration for better engagement")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Video quality is excellent! No major improvements needed")
	}
	return recs
}

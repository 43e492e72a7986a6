package quality

import (
	"strings"
	"testing"
)

func evenScenes(n int, each float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = each
	}
	return out
}

func TestAssessIdealVideoIsExcellent(t *testing.T) {
	// Six scenes of six seconds: duration, count, and pacing all land
	// inside their ideal windows.
	r := Assess(36, evenScenes(6, 6))

	if r.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want 100", r.OverallScore)
	}
	if r.Rating != RatingExcellent {
		t.Errorf("Rating = %q, want %q", r.Rating, RatingExcellent)
	}
	if len(r.Weaknesses) != 0 {
		t.Errorf("unexpected weaknesses: %v", r.Weaknesses)
	}
	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "excellent") {
		t.Errorf("ideal video should get the no-improvements note, got %v", r.Recommendations)
	}
}

func TestAssessStatuses(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		scenes   []float64
		status   func(Report) string
		want     string
	}{
		{"short video", 15, evenScenes(4, 3.75), func(r Report) string { return r.Duration.Status }, "too_short"},
		{"long video", 200, evenScenes(6, 33), func(r Report) string { return r.Duration.Status }, "too_long"},
		{"optimal duration", 60, evenScenes(6, 10), func(r Report) string { return r.Duration.Status }, "optimal"},
		{"too few scenes", 40, evenScenes(2, 20), func(r Report) string { return r.SceneStructure.Status }, "too_few"},
		{"too many scenes", 60, evenScenes(12, 5), func(r Report) string { return r.SceneStructure.Status }, "too_many"},
		{"fast pacing", 10, evenScenes(5, 2), func(r Report) string { return r.Pacing.Status }, "too_fast"},
		{"slow pacing", 100, evenScenes(5, 20), func(r Report) string { return r.Pacing.Status }, "too_slow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Assess(tc.duration, tc.scenes)
			if got := tc.status(r); got != tc.want {
				t.Errorf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDurationScoreDecaysMonotonically(t *testing.T) {
	// Walking the duration further past the ideal maximum must never raise
	// the score.
	prev := 101
	for d := 120.0; d <= 600; d += 5 {
		score := Assess(d, evenScenes(6, d/6)).Duration.Score
		if score > prev {
			t.Fatalf("score rose from %d to %d at duration %.0fs", prev, score, d)
		}
		prev = score
	}

	// Same walking down below the ideal minimum.
	prev = 101
	for d := 30.0; d >= 1; d -= 1 {
		score := Assess(d, evenScenes(6, d/6)).Duration.Score
		if score > prev {
			t.Fatalf("score rose from %d to %d at duration %.0fs", prev, score, d)
		}
		prev = score
	}
}

func TestScoreBounds(t *testing.T) {
	for _, d := range []float64{0, 1, 9, 10, 30, 120, 300, 301, 10000} {
		r := Assess(d, evenScenes(5, d/5))
		for _, m := range []Metric{r.Duration, r.SceneStructure, r.Pacing} {
			if m.Score < 0 || m.Score > 100 {
				t.Errorf("duration %.0f: metric score %d outside [0, 100]", d, m.Score)
			}
		}
		if r.OverallScore < 0 || r.OverallScore > 100 {
			t.Errorf("duration %.0f: overall %d outside [0, 100]", d, r.OverallScore)
		}
	}
}

func TestRecommendationsFireBelowSeventy(t *testing.T) {
	// 15s over 2 scenes: duration and scene count both score below 70.
	r := Assess(15, evenScenes(2, 7.5))
	if r.Duration.Score >= 70 || r.SceneStructure.Score >= 70 {
		t.Fatalf("test premise broken: duration=%d scenes=%d", r.Duration.Score, r.SceneStructure.Score)
	}
	var sawDuration, sawScenes bool
	for _, rec := range r.Recommendations {
		if strings.Contains(rec, "duration") {
			sawDuration = true
		}
		if strings.Contains(rec, "scenes") {
			sawScenes = true
		}
	}
	if !sawDuration || !sawScenes {
		t.Errorf("expected both duration and scene recommendations, got %v", r.Recommendations)
	}
}

func TestRatingThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, RatingExcellent},
		{85, RatingExcellent},
		{84, RatingGood},
		{70, RatingGood},
		{69, RatingNeedsWork},
		{0, RatingNeedsWork},
	}
	for _, tc := range cases {
		got := ratingFor(tc.score)
		if got != tc.want {
			t.Errorf("ratingFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAssessNoScenes(t *testing.T) {
	r := Assess(0, nil)
	if r.Pacing.Status != "unknown" {
		t.Errorf("Pacing.Status = %q, want unknown", r.Pacing.Status)
	}
	if r.Rating != RatingNeedsWork {
		t.Errorf("Rating = %q, want %q", r.Rating, RatingNeedsWork)
	}
}

func TestMarkdownReport(t *testing.T) {
	r := Assess(36, evenScenes(6, 6))
	md := r.Markdown()
	for _, want := range []string{"# Video Quality Assessment Report", "100", RatingExcellent, "Duration", "Pacing"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

package pipeline

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edu_video_generator/analyzer"
	"edu_video_generator/blueprint"
	"edu_video_generator/export"
	"edu_video_generator/generator"
	"edu_video_generator/history"
	"edu_video_generator/render"
)

type stubLLM struct {
	out string
	err error
}

func (s stubLLM) Complete(_ context.Context, _ generator.Prompt) (string, error) {
	return s.out, s.err
}

// fakeRenderer writes an empty video file and reports the planned duration.
type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) Render(_ context.Context, _ string, bp blueprint.Blueprint, dir string) (render.Result, error) {
	f.calls++
	if f.err != nil {
		return render.Result{}, f.err
	}
	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("mp4"), 0644); err != nil {
		return render.Result{}, err
	}
	return render.Result{VideoPath: path, Duration: bp.TotalDuration}, nil
}

func newTestPipeline(t *testing.T, llm generator.LLMClient, renderer Renderer) (*Pipeline, *history.Store) {
	t.Helper()
	outputDir := t.TempDir()

	store, err := history.Open(filepath.Join(outputDir, "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	exports, err := export.NewManager(outputDir, false, nil)
	if err != nil {
		t.Fatalf("export.NewManager: %v", err)
	}

	scripts, err := generator.NewGenerator(llm, time.Second, log.Default())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	pipe, err := New(scripts, renderer, store, exports, outputDir, 6, log.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pipe, store
}

func TestRunEndToEnd(t *testing.T) {
	pipe, store := newTestPipeline(t, generator.MockLLM{}, &fakeRenderer{})

	rec, err := pipe.Run(context.Background(), "How to bake sourdough bread")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.Pattern != analyzer.PatternProcess {
		t.Errorf("Pattern = %q, want process", rec.Pattern)
	}
	if rec.UsedFallback {
		t.Errorf("demo model should not count as fallback: %s", rec.FallbackReason)
	}
	if len(rec.Script.Scenes) != 6 {
		t.Errorf("got %d scenes, want 6", len(rec.Script.Scenes))
	}
	if rec.Quality.Rating != "Excellent" {
		t.Errorf("Rating = %q, want Excellent (score %d)", rec.Quality.Rating, rec.Quality.OverallScore)
	}
	if _, err := os.Stat(rec.VideoPath); err != nil {
		t.Errorf("video file missing: %v", err)
	}
	if rec.ExportPath == "" {
		t.Error("export bundle not recorded")
	} else if _, err := os.Stat(rec.ExportPath); err != nil {
		t.Errorf("export bundle missing: %v", err)
	}

	// Run artifacts land next to the video.
	runDir := filepath.Dir(rec.VideoPath)
	for _, name := range []string{"script.txt", "quality_report.md"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	// The record is retrievable from history.
	stored, err := store.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if stored.Topic != rec.Topic {
		t.Errorf("stored topic = %q", stored.Topic)
	}
}

func TestRunSurvivesLLMFailure(t *testing.T) {
	pipe, store := newTestPipeline(t, stubLLM{err: context.DeadlineExceeded}, &fakeRenderer{})

	rec, err := pipe.Run(context.Background(), "Photosynthesis explained")
	if err != nil {
		t.Fatalf("Run should survive an AI outage: %v", err)
	}
	if !rec.UsedFallback {
		t.Fatal("record must flag the fallback script")
	}
	if rec.FallbackReason != "timeout" {
		t.Errorf("FallbackReason = %q, want timeout", rec.FallbackReason)
	}
	if len(rec.Script.Scenes) == 0 {
		t.Fatal("fallback script must be non-empty")
	}

	stored, err := store.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if !stored.UsedFallback || stored.FallbackReason != "timeout" {
		t.Errorf("fallback flags not persisted: %+v", stored)
	}
}

func TestRunRenderFailureLeavesNoRecord(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("ffmpeg exploded")}
	pipe, store := newTestPipeline(t, generator.MockLLM{}, renderer)

	_, err := pipe.Run(context.Background(), "Gravity")
	if err == nil {
		t.Fatal("expected render failure to fail the run")
	}
	if renderer.calls != 1 {
		t.Errorf("renderer called %d times, want 1", renderer.calls)
	}

	records, listErr := store.List(context.Background())
	if listErr != nil {
		t.Fatalf("List: %v", listErr)
	}
	if len(records) != 0 {
		t.Errorf("failed run must not leave a record, found %d", len(records))
	}
}

func TestRunRejectsEmptyTopic(t *testing.T) {
	pipe, _ := newTestPipeline(t, generator.MockLLM{}, &fakeRenderer{})

	for _, topic := range []string{"", "   ", "\n\t"} {
		if _, err := pipe.Run(context.Background(), topic); !errors.Is(err, ErrEmptyTopic) {
			t.Errorf("Run(%q) err = %v, want ErrEmptyTopic", topic, err)
		}
	}
}

func TestRunScenesOverridesCount(t *testing.T) {
	pipe, _ := newTestPipeline(t, generator.MockLLM{}, &fakeRenderer{})

	rec, err := pipe.RunScenes(context.Background(), "Gravity", 4)
	if err != nil {
		t.Fatalf("RunScenes: %v", err)
	}
	if len(rec.Script.Scenes) != 4 {
		t.Errorf("got %d scenes, want 4", len(rec.Script.Scenes))
	}
	if len(rec.Blueprint.Scenes) != 4 {
		t.Errorf("blueprint has %d scenes, want 4", len(rec.Blueprint.Scenes))
	}
}

func TestNewValidatesDependencies(t *testing.T) {
	scripts, err := generator.NewGenerator(generator.MockLLM{}, time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(nil, &fakeRenderer{}, nil, nil, "", 0, nil); err == nil {
		t.Error("nil generator accepted")
	}
	if _, err := New(scripts, nil, nil, nil, "", 0, nil); err == nil {
		t.Error("nil renderer accepted")
	}
}

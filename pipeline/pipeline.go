// Package pipeline sequences one generation run: analyze the topic, generate
// the script, build the blueprint, render, assess, export, record. Runs are
// synchronous; one topic runs to completion before the next starts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"edu_video_generator/analyzer"
	"edu_video_generator/blueprint"
	"edu_video_generator/export"
	"edu_video_generator/generator"
	"edu_video_generator/history"
	"edu_video_generator/quality"
	"edu_video_generator/render"
)

// Stage names the states of one generation run.
type Stage string

const (
	StageIdle              Stage = "idle"
	StageAnalyzing         Stage = "analyzing"
	StageScriptGenerating  Stage = "script_generating"
	StageBlueprintBuilding Stage = "blueprint_building"
	StageRendering         Stage = "rendering"
	StageAssessing         Stage = "assessing"
	StageExporting         Stage = "exporting"
	StageComplete          Stage = "complete"
	StageFailed            Stage = "failed"
)

// ErrEmptyTopic rejects a run before the pipeline starts.
var ErrEmptyTopic = errors.New("topic must not be empty")

// Renderer is the boundary to the rendering library. render.FFmpeg is the
// production implementation; tests inject fakes.
type Renderer interface {
	Render(ctx context.Context, topic string, bp blueprint.Blueprint, dir string) (render.Result, error)
}

// Pipeline wires the components for repeated runs. The history store is
// injected so runs stay independently testable.
type Pipeline struct {
	scripts    *generator.Generator
	renderer   Renderer
	store      *history.Store
	exports    *export.Manager
	outputDir  string
	sceneCount int
	logger     *log.Logger
}

func New(scripts *generator.Generator, renderer Renderer, store *history.Store, exports *export.Manager, outputDir string, sceneCount int, logger *log.Logger) (*Pipeline, error) {
	if scripts == nil {
		return nil, errors.New("script generator is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if store == nil {
		return nil, errors.New("history store is required")
	}
	if exports == nil {
		return nil, errors.New("export manager is required")
	}
	if outputDir == "" {
		outputDir = "output"
	}
	if sceneCount <= 0 {
		sceneCount = 6
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		scripts:    scripts,
		renderer:   renderer,
		store:      store,
		exports:    exports,
		outputDir:  outputDir,
		sceneCount: sceneCount,
		logger:     logger,
	}, nil
}

// Run executes the full pipeline for one topic with the default scene count.
func (p *Pipeline) Run(ctx context.Context, topic string) (*history.Record, error) {
	return p.RunScenes(ctx, topic, p.sceneCount)
}

// RunScenes is Run with an explicit target scene count. A render failure is
// terminal: no video, no record. An upstream AI failure is not: the fallback
// script keeps the run alive and is flagged on the record.
func (p *Pipeline) RunScenes(ctx context.Context, topic string, sceneCount int) (*history.Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if sceneCount <= 0 {
		sceneCount = p.sceneCount
	}

	runID := uuid.NewString()
	runDir := filepath.Join(p.outputDir, runID[:8])
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	p.stage(runID, StageAnalyzing)
	analysis := analyzer.Analyze(topic)

	p.stage(runID, StageScriptGenerating)
	script := p.scripts.Generate(ctx, topic, analysis.Pattern, sceneCount)
	if script.UsedFallback {
		p.logger.Printf("[pipeline] run=%s using fallback script (%s)", runID[:8], script.FallbackReason)
	}
	// Concepts from the topic alone are thin; re-extract from the full script.
	if concepts := analyzer.KeyConcepts(topic + ". " + script.Text()); len(concepts) > 0 {
		analysis.KeyConcepts = concepts
	}

	p.stage(runID, StageBlueprintBuilding)
	bp := blueprint.Build(script, analysis.Pattern)

	p.stage(runID, StageRendering)
	result, err := p.renderer.Render(ctx, topic, bp, runDir)
	if err != nil {
		p.stage(runID, StageFailed)
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	p.stage(runID, StageAssessing)
	report := quality.Assess(result.Duration, bp.SceneDurations())

	rec := &history.Record{
		ID:             runID,
		Topic:          topic,
		Pattern:        analysis.Pattern,
		UsedFallback:   script.UsedFallback,
		FallbackReason: script.FallbackReason,
		Analysis:       analysis,
		Script:         script,
		Blueprint:      bp,
		Quality:        report,
		VideoPath:      result.VideoPath,
		VideoDuration:  result.Duration,
		CreatedAt:      time.Now().UTC(),
	}

	p.stage(runID, StageExporting)
	if err := p.writeRunArtifacts(runDir, rec); err != nil {
		p.logger.Printf("[pipeline] run=%s artifact write failed: %v", runID[:8], err)
	}
	if zipPath, err := p.exports.ExportProject(rec); err != nil {
		p.logger.Printf("[pipeline] run=%s export failed: %v", runID[:8], err)
	} else {
		rec.ExportPath = zipPath
	}

	// The record is inserted whole only after the run finished; a failed run
	// never leaves a partial row behind.
	if err := p.store.Add(ctx, rec); err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	p.stage(runID, StageComplete)
	p.logger.Printf("[pipeline] run=%s complete: pattern=%s score=%d rating=%q video=%s",
		runID[:8], rec.Pattern, rec.Quality.OverallScore, rec.Quality.Rating, rec.VideoPath)
	return rec, nil
}

// writeRunArtifacts drops the plain-text artifacts next to the video.
func (p *Pipeline) writeRunArtifacts(runDir string, rec *history.Record) error {
	if err := os.WriteFile(filepath.Join(runDir, "script.txt"), []byte(rec.Script.Text()+"\n"), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, "quality_report.md"), []byte(rec.Quality.Markdown()), 0644); err != nil {
		return err
	}
	return nil
}

func (p *Pipeline) stage(runID string, s Stage) {
	p.logger.Printf("[pipeline] run=%s stage=%s", runID[:8], s)
}

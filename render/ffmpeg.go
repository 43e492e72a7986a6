// Package render converts a blueprint into an MP4 by driving ffmpeg: one
// drawtext slide per scene, concatenated into a single output file. Any
// failure here is terminal for the run; no partial video is kept.
package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"edu_video_generator/blueprint"
)

// ErrFFmpegMissing reports the missing rendering dependency.
var ErrFFmpegMissing = errors.New("ffmpeg not found in PATH")

// Result describes a finished render.
type Result struct {
	VideoPath string
	Duration  float64
}

// Options control the encoded output.
type Options struct {
	Width  int
	Height int
	FPS    int
}

// DefaultOptions is the standard 1080p output profile.
func DefaultOptions() Options {
	return Options{Width: 1920, Height: 1080, FPS: 24}
}

// FFmpeg renders blueprints with the system ffmpeg binary.
type FFmpeg struct {
	opts    Options
	logger  *log.Logger
	verbose bool
}

func NewFFmpeg(opts Options, verbose bool, logger *log.Logger) *FFmpeg {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1920, 1080
	}
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FFmpeg{opts: opts, logger: logger, verbose: verbose}
}

// sceneBackgrounds picks a background color per visual hint so the slides
// visually track the pattern. Unlisted hints fall through to the default.
var sceneBackgrounds = map[string]string{
	"split_screen":        "0x1e3a5f",
	"side_by_side":        "0x1e3a5f",
	"merge":               "0x24344d",
	"title":               "0x14213d",
	"flowchart":           "0x1d3557",
	"overview":            "0x24344d",
	"tree_diagram":        "0x2b2d42",
	"zoom_out":            "0x24344d",
	"network_graph":       "0x283d3b",
	"horizontal_timeline": "0x3a2e39",
	"bar_chart":           "0x1f2d16",
	"summary":             "0x24344d",
	"fade_in":             "0x14213d",
	"bullet_points":       "0x1d3557",
	"fade_out":            "0x14213d",
}

const defaultBackground = "0x1e1e32"

// Render writes one slide clip per scene into dir, concatenates them into
// video.mp4, and probes the realized duration. On any error the partial
// output is removed before the error is returned.
func (f *FFmpeg) Render(ctx context.Context, topic string, bp blueprint.Blueprint, dir string) (Result, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrFFmpegMissing, err)
	}
	if len(bp.Scenes) == 0 {
		return Result{}, errors.New("blueprint has no scenes")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, err
	}

	f.infof("rendering %d scenes (pattern=%s)", len(bp.Scenes), bp.Pattern)

	var clips []string
	for _, scene := range bp.Scenes {
		clip := filepath.Join(dir, fmt.Sprintf("scene_%02d.mp4", scene.Index))
		if err := f.renderScene(ctx, topic, scene, clip); err != nil {
			f.cleanup(clips, clip)
			return Result{}, fmt.Errorf("render scene %d: %w", scene.Index, err)
		}
		clips = append(clips, clip)
	}

	outFile := filepath.Join(dir, "video.mp4")
	if err := f.concat(ctx, clips, dir, outFile); err != nil {
		f.cleanup(clips, outFile)
		return Result{}, fmt.Errorf("concat scenes: %w", err)
	}
	f.cleanup(clips, "")

	duration, err := f.probeDuration(ctx, outFile)
	if err != nil {
		f.infof("ffprobe unavailable (%v), using planned duration", err)
		duration = bp.TotalDuration
	}

	f.infof("video ready: %s (%.1fs)", outFile, duration)
	return Result{VideoPath: outFile, Duration: duration}, nil
}

// renderScene produces a single text slide of the scene's duration. The
// first scene doubles as the title card and shows the topic. The narration
// goes through a text file rather than the filter string itself: filtergraph
// quoting cannot represent a quote inside a quoted section, and scene text
// routinely contains apostrophes.
func (f *FFmpeg) renderScene(ctx context.Context, topic string, scene blueprint.Scene, outFile string) error {
	bg, ok := sceneBackgrounds[scene.Visual]
	if !ok {
		bg = defaultBackground
	}

	text := scene.Text
	fontSize := 48
	if scene.Index == 0 && topic != "" {
		text = topic
		fontSize = 72
	}

	textFile := strings.TrimSuffix(outFile, ".mp4") + ".txt"
	if err := os.WriteFile(textFile, []byte(wrapText(text, 40)), 0644); err != nil {
		return err
	}
	defer os.Remove(textFile)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:d=%.2f:r=%d", bg, f.opts.Width, f.opts.Height, scene.Duration, f.opts.FPS),
		"-vf", sceneFilter(textFile, fontSize),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-an",
		outFile,
	)
	return f.run(cmd)
}

func (f *FFmpeg) concat(ctx context.Context, clips []string, dir, outFile string) error {
	listFile := filepath.Join(dir, "scenes_concat.txt")
	var lines []string
	for _, clip := range clips {
		lines = append(lines, fmt.Sprintf("file '%s'", clip))
	}
	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return err
	}
	defer os.Remove(listFile)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c:v", "copy",
		"-movflags", "+faststart",
		outFile,
	)
	return f.run(cmd)
}

func (f *FFmpeg) probeDuration(ctx context.Context, videoFile string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoFile,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

func (f *FFmpeg) run(cmd *exec.Cmd) error {
	if f.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// cleanup removes intermediate clips and, when non-empty, the partial output.
func (f *FFmpeg) cleanup(clips []string, partial string) {
	for _, clip := range clips {
		_ = os.Remove(clip)
	}
	if partial != "" {
		_ = os.Remove(partial)
	}
}

func (f *FFmpeg) infof(format string, args ...interface{}) {
	f.logger.Printf("[render] "+format, args...)
}

// sceneFilter builds the drawtext filter for one slide. expansion=none keeps
// the file contents fully literal; only the file path needs filter quoting.
func sceneFilter(textFile string, fontSize int) string {
	return fmt.Sprintf(
		"drawtext=textfile='%s':expansion=none:fontcolor=white:fontsize=%d:x=(w-text_w)/2:y=(h-text_h)/2:line_spacing=16",
		escapeFilterValue(textFile), fontSize,
	)
}

// escapeFilterValue prepares a value for a single-quoted filtergraph string.
// A quote cannot appear inside a quoted section, so each one is written as
// close-quote, backslash-escaped quote, reopen.
func escapeFilterValue(s string) string {
	return strings.ReplaceAll(s, `'`, `'\''`)
}

// wrapText inserts newlines so long narration fits the slide.
func wrapText(s string, maxChars int) string {
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, word := range words {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > maxChars {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Package export bundles a generation record's artifacts into downloadable
// files: a per-project zip, an analytics JSON dump, and cleanup of old
// exports. Pure assembly, no content transformation beyond the markdown
// report's HTML rendering.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"edu_video_generator/history"
)

// Manager owns the exports directory under the output root.
type Manager struct {
	exportsDir string
	logger     *log.Logger
	verbose    bool
}

func NewManager(outputDir string, verbose bool, logger *log.Logger) (*Manager, error) {
	if outputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	exportsDir := filepath.Join(outputDir, "exports")
	if err := os.MkdirAll(exportsDir, 0755); err != nil {
		return nil, fmt.Errorf("create exports dir: %w", err)
	}
	return &Manager{exportsDir: exportsDir, logger: logger, verbose: verbose}, nil
}

func (m *Manager) infof(format string, args ...interface{}) {
	if !m.verbose {
		return
	}
	m.logger.Printf("[export] "+format, args...)
}

// ExportProject writes the complete project bundle as a zip:
// script.txt, blueprint.json, analysis.json, quality_report.md,
// quality_report.html, README.md, and the video file when present.
func (m *Manager) ExportProject(rec *history.Record) (string, error) {
	if rec == nil {
		return "", errors.New("record is required")
	}

	name := fmt.Sprintf("%s_%s", slug(rec.Topic), rec.CreatedAt.Format("20060102_150405"))
	zipPath := filepath.Join(m.exportsDir, name+".zip")

	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create zip: %w", err)
	}
	defer f.Close()

	// A half-written bundle must not linger in the exports dir.
	zw := zip.NewWriter(f)
	if err := m.writeBundle(zw, rec); err != nil {
		_ = zw.Close()
		_ = os.Remove(zipPath)
		return "", err
	}
	if err := zw.Close(); err != nil {
		_ = os.Remove(zipPath)
		return "", fmt.Errorf("finalize zip: %w", err)
	}

	m.infof("project bundle written: %s", zipPath)
	return zipPath, nil
}

func (m *Manager) writeBundle(zw *zip.Writer, rec *history.Record) error {
	blueprintJSON, err := json.MarshalIndent(rec.Blueprint, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	analysisJSON, err := json.MarshalIndent(rec.Analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	reportMD := rec.Quality.Markdown()
	reportHTML, err := mdToHTML(reportMD)
	if err != nil {
		return fmt.Errorf("render report html: %w", err)
	}

	entries := []struct {
		name string
		data []byte
	}{
		{"script.txt", []byte(rec.Script.Text() + "\n")},
		{"blueprint.json", blueprintJSON},
		{"analysis.json", analysisJSON},
		{"quality_report.md", []byte(reportMD)},
		{"quality_report.html", []byte(reportHTML)},
		{"README.md", []byte(readme(rec))},
	}
	for _, entry := range entries {
		if err := writeZipEntry(zw, entry.name, entry.data); err != nil {
			return err
		}
	}

	if rec.VideoPath != "" {
		if err := copyFileIntoZip(zw, rec.VideoPath, "video.mp4"); err != nil {
			// The bundle is still useful without the video; note and move on.
			m.logger.Printf("[export] skipping video in bundle: %v", err)
		}
	}
	return nil
}

// ExportAnalytics dumps the full history as a timestamped JSON file.
func (m *Manager) ExportAnalytics(records []history.Record) (string, error) {
	payload := struct {
		ExportDate  time.Time        `json:"export_date"`
		TotalVideos int              `json:"total_videos"`
		Videos      []history.Record `json:"videos"`
	}{
		ExportDate:  time.Now().UTC(),
		TotalVideos: len(records),
		Videos:      records,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analytics: %w", err)
	}

	path := filepath.Join(m.exportsDir, fmt.Sprintf("analytics_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write analytics: %w", err)
	}
	m.infof("analytics written: %s (%d records)", path, len(records))
	return path, nil
}

// CleanupOldExports removes export files older than maxAge.
func (m *Manager) CleanupOldExports(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	entries, err := os.ReadDir(m.exportsDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.IsDir() && info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(m.exportsDir, entry.Name())); err == nil {
				m.infof("removed old export %s", entry.Name())
			}
		}
	}
	return nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func readme(rec *history.Record) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", rec.Topic))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("## Project Contents\n\n")
	sb.WriteString("- `script.txt`: the generated video script\n")
	sb.WriteString("- `blueprint.json`: the animation blueprint with per-scene durations and visual hints\n")
	sb.WriteString("- `analysis.json`: the visual learning pattern analysis\n")
	sb.WriteString("- `quality_report.md` / `quality_report.html`: the quality assessment\n")
	if rec.VideoPath != "" {
		sb.WriteString("- `video.mp4`: the rendered video\n")
	}
	sb.WriteString(fmt.Sprintf("\n## Visual Pattern\n\nPrimary Pattern: %s\n", rec.Pattern))
	if rec.UsedFallback {
		sb.WriteString(fmt.Sprintf("\nNote: the script came from the fallback library (%s); the AI service was unavailable.\n", rec.FallbackReason))
	}
	sb.WriteString(fmt.Sprintf("\n## Quality Score\n\nOverall Score: %d/100\nRating: %s\n", rec.Quality.OverallScore, rec.Quality.Rating))
	if len(rec.Analysis.KeyConcepts) > 0 {
		sb.WriteString(fmt.Sprintf("\n## Key Concepts\n\n%s\n", strings.Join(rec.Analysis.KeyConcepts, ", ")))
	}
	return sb.String()
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	return nil
}

func copyFileIntoZip(zw *zip.Writer, srcPath, name string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// slug makes a topic safe for a filename.
func slug(topic string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('_')
		}
	}
	s := sb.String()
	if s == "" {
		s = "project"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

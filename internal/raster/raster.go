// Package raster renders uploaded PDF documents into an ordered sequence
// of page images sized for inline transmission to a vision model.
package raster

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jklim/schoolcal/internal/common"
)

// Config for the rasterizer. Scaling and compression happen inside
// pdftoppm, so per-page output size stays bounded regardless of the
// source resolution.
type Config struct {
	Pdftoppm    string // binary name or path; defaults to "pdftoppm"
	TargetWidth int    // horizontal resolution of each page image
	JPEGQuality int    // lossy compression quality, 1..100
}

// Rasterizer converts PDF bytes into per-page JPEG data URLs.
type Rasterizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Rasterizer {
	return NewWithRunner(cfg, execRunner{}, logger)
}

// NewWithRunner is the constructor used by tests to stub pdftoppm.
func NewWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Rasterizer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TargetWidth <= 0 {
		cfg.TargetWidth = 1536
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 85
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rasterizer{cfg: cfg, runner: runner, logger: logger}
}

// RenderPages renders every page of the document in data to a JPEG data
// URL, preserving page order. All transient files live in a per-call temp
// directory that is removed before returning, so peak disk/memory use is
// bounded by a single document.
//
// Input that pdftoppm cannot parse fails with common.ErrDocumentParse.
func (r *Rasterizer) RenderPages(ctx context.Context, data []byte) ([]string, error) {
	start := time.Now()

	if len(data) == 0 {
		return nil, fmt.Errorf("empty document: %w", common.ErrDocumentParse)
	}

	tmpDir, err := os.MkdirTemp("", "schoolcal-raster-*")
	if err != nil {
		return nil, common.WrapError(err, "create temp dir")
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("raster.cleanup_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	src := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, common.WrapError(err, "write temp pdf")
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -jpeg -jpegopt quality=85 -scale-to-x 1536 -scale-to-y -1 <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-jpeg",
		"-jpegopt", fmt.Sprintf("quality=%d", r.cfg.JPEGQuality),
		"-scale-to-x", strconv.Itoa(r.cfg.TargetWidth),
		"-scale-to-y", "-1",
		src, prefix,
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("raster.render_failed", "stderr", truncate(string(errb), 2<<10), "error", err)
		return nil, fmt.Errorf("pdftoppm: %v: %w", err, common.ErrDocumentParse)
	}

	// collect generated pages (prefix-1.jpg, prefix-2.jpg, ...);
	// pdftoppm zero-pads page numbers, so a lexical sort keeps page order
	matches, _ := filepath.Glob(prefix + "-*.jpg")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages: %w", common.ErrDocumentParse)
	}

	urls := make([]string, 0, len(matches))
	var total int
	for _, p := range matches {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %s: %w", filepath.Base(p), err)
		}
		urls = append(urls, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(b))
		total += len(b)
		// release the on-disk page early; the temp dir removal is the backstop
		_ = os.Remove(p)
	}

	r.logger.Info("raster.render_ok",
		"pages", len(urls),
		"payload_bytes", total,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return urls, nil
}

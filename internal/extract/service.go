// Package extract orchestrates the pipeline: input validation, the
// bounded model call, and calendar encoding of the result.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jklim/schoolcal/internal/calendar"
	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/llm"
)

// PageRenderer rasterizes a PDF into per-page data URLs.
type PageRenderer interface {
	RenderPages(ctx context.Context, data []byte) ([]string, error)
}

// Result is the outcome of a successful extraction run. ICSContent is ""
// when Events is empty; that is a valid result, never an error.
type Result struct {
	Events     []event.Event
	ICSContent string
}

// Service sequences rasterization, extraction, and encoding for one
// request. It holds no per-request state; concurrent requests are
// independent.
type Service struct {
	extractor llm.EventExtractor
	renderer  PageRenderer
	timeout   time.Duration
	logger    *slog.Logger
}

func NewService(extractor llm.EventExtractor, renderer PageRenderer, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: extractor,
		renderer:  renderer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Extract runs the pipeline on pre-rasterized page images. Page-count
// bounds are checked before anything else, so validation failures never
// reach the model. The model call is capped at the configured wall-clock
// bound; overruns surface as common.ErrTimeout. No automatic retry: the
// human decides whether to try again.
func (s *Service) Extract(ctx context.Context, req llm.ExtractRequest) (Result, error) {
	if err := llm.ValidatePageCount(len(req.Images)); err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	events, _, err := s.extractor.ExtractEvents(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("model call exceeded %s: %w", s.timeout, common.ErrTimeout)
		}
		return Result{}, err
	}
	if events == nil {
		// Empty result is success; keep the JSON events array non-null.
		events = []event.Event{}
	}

	ics := ""
	if len(events) > 0 {
		ics, err = calendar.GenerateICS(events)
		if err != nil {
			return Result{}, err
		}
	}

	s.logger.Info("extract.ok",
		"pages", len(req.Images),
		"event_count", len(events),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{Events: events, ICSContent: ics}, nil
}

// ExtractFromPDF rasterizes the document server-side, then runs Extract on
// the resulting pages.
func (s *Service) ExtractFromPDF(ctx context.Context, pdf []byte, customPrompt string, fields *event.EnabledFields) (Result, error) {
	if s.renderer == nil {
		return Result{}, errors.New("no page renderer configured")
	}
	images, err := s.renderer.RenderPages(ctx, pdf)
	if err != nil {
		return Result{}, err
	}
	return s.Extract(ctx, llm.ExtractRequest{
		Images:        images,
		CustomPrompt:  customPrompt,
		EnabledFields: fields,
	})
}

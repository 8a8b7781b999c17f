package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/llm"
)

const systemPrompt = "You are an expert at extracting structured event data from Singapore school communications. " +
	"You are thorough and never miss events. You always output valid JSON."

var _ llm.EventExtractor = (*Client)(nil)

// ExtractEvents implements llm.EventExtractor with one vision
// chat/completions call carrying every page image in a single batch.
// The declared output schema is enforced twice: strict response_format on
// the provider side, then re-validated locally before unmarshal. Anything
// outside the schema fails with common.ErrMalformedResponse; there is no
// lenient coercion and no automatic retry.
func (c *Client) ExtractEvents(ctx context.Context, req llm.ExtractRequest) ([]event.Event, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is not set: %w", common.ErrProviderConfig)
	}
	if err := llm.ValidatePageCount(len(req.Images)); err != nil {
		return nil, nil, err
	}

	prompt := llm.BuildPrompt(req.CustomPrompt, req.EnabledFields)
	schema := llm.BuildEventsJSONSchema()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"pages", len(req.Images),
		"custom_prompt", req.CustomPrompt != "",
		"prompt_len", len(prompt),
	)

	content := make([]map[string]any, 0, 1+len(req.Images))
	content = append(content, map[string]any{"type": "text", "text": prompt})
	for _, img := range req.Images {
		content = append(content, map[string]any{
			"type": "image_url",
			"image_url": map[string]any{
				"url":    img,
				"detail": "high",
			},
		})
	}

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": content},
		},
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   llm.SchemaName,
				"strict": true,
				"schema": schema,
			},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		if status == 401 || status == 403 {
			return nil, raw, fmt.Errorf("provider rejected credentials (status %d): %w", status, common.ErrProviderConfig)
		}
		return nil, raw, fmt.Errorf("openai request: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("decode openai response: %v: %w", err, common.ErrMalformedResponse)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("no choices in openai response: %w", common.ErrMalformedResponse)
	}

	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))
	if len(rawContent) == 0 {
		return nil, raw, fmt.Errorf("empty completion content: %w", common.ErrMalformedResponse)
	}

	if err := llm.ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, rawContent, fmt.Errorf("schema validation failed: %v: %w", err, common.ErrMalformedResponse)
	}

	var out struct {
		Events []event.Event `json:"events"`
	}
	if err := json.Unmarshal(rawContent, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, rawContent, fmt.Errorf("unmarshal events: %v: %w", err, common.ErrMalformedResponse)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"event_count", len(out.Events),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Events, rawContent, nil
}

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/llm"
)

const validCompletion = `{
  "events": [
    {
      "title": "Sports Day",
      "date": "2026-03-14",
      "start_time": "08:30",
      "end_time": "13:00",
      "location": "School Field",
      "event_type": "field_trip",
      "things_to_bring": ["Water bottle", "Cap"],
      "attire": "PE attire",
      "notes": null,
      "is_all_day": false
    }
  ]
}`

func completionResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func testImages(n int) []string {
	imgs := make([]string, n)
	for i := range imgs {
		imgs[i] = fmt.Sprintf("data:image/jpeg;base64,cGFnZQ==%d", i)
	}
	return imgs
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
}

func TestExtractEvents(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		fmt.Fprint(w, completionResponse(validCompletion))
	})

	events, raw, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(2)})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d", len(events))
	}
	ev := events[0]
	if ev.Title != "Sports Day" || ev.Date != "2026-03-14" || ev.EventType != event.TypeFieldTrip {
		t.Errorf("event = %+v", ev)
	}
	if ev.StartTime == nil || *ev.StartTime != "08:30" {
		t.Errorf("start_time = %v", ev.StartTime)
	}
	if ev.Notes != nil {
		t.Errorf("notes = %v, want nil", ev.Notes)
	}
	if len(ev.ThingsToBring) != 2 {
		t.Errorf("things_to_bring = %v", ev.ThingsToBring)
	}
	if len(raw) == 0 {
		t.Error("raw completion content not returned")
	}

	// the request carries the structured-output contract and every page
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("model = %v", gotBody["model"])
	}
	rf, _ := gotBody["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Errorf("response_format.type = %v", rf["type"])
	}
	js, _ := rf["json_schema"].(map[string]any)
	if js["name"] != llm.SchemaName || js["strict"] != true {
		t.Errorf("json_schema = %v", js)
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	parts, _ := user["content"].([]any)
	if len(parts) != 3 { // prompt text + two page images
		t.Fatalf("content parts = %d", len(parts))
	}
	img, _ := parts[1].(map[string]any)
	iu, _ := img["image_url"].(map[string]any)
	if iu["detail"] != "high" {
		t.Errorf("image detail = %v", iu["detail"])
	}
}

func TestExtractEvents_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient(Config{}, nil)

	_, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(1)})
	if !errors.Is(err, common.ErrProviderConfig) {
		t.Fatalf("err = %v, want ErrProviderConfig", err)
	}
}

func TestExtractEvents_PageBounds(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{}); !errors.Is(err, common.ErrNoImages) {
		t.Fatalf("err = %v, want ErrNoImages", err)
	}
	if _, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(11)}); !errors.Is(err, common.ErrTooManyPages) {
		t.Fatalf("err = %v, want ErrTooManyPages", err)
	}
	if called {
		t.Error("provider was called for invalid input")
	}
}

func TestExtractEvents_RejectedCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Incorrect API key provided"}}`, http.StatusUnauthorized)
	})

	_, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(1)})
	if !errors.Is(err, common.ErrProviderConfig) {
		t.Fatalf("err = %v, want ErrProviderConfig", err)
	}
}

func TestExtractEvents_MalformedCompletions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>proxy error</html>"},
		{"no choices", `{"choices":[]}`},
		{"empty content", completionResponse("   ")},
		{"content not json", completionResponse("Sorry, I cannot help with that.")},
		{"schema violation", completionResponse(`{"events":[{"title":"X"}]}`)},
		{"wrong wrapper", completionResponse(`[{"title":"X"}]`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			})
			_, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(1)})
			if !errors.Is(err, common.ErrMalformedResponse) {
				t.Fatalf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestExtractEvents_EmptyEventsIsValid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"events":[]}`))
	})

	events, _, err := c.ExtractEvents(context.Background(), llm.ExtractRequest{Images: testImages(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d", len(events))
	}
}

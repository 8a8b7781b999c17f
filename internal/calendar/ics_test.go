package calendar

import (
	"errors"
	"strings"
	"testing"

	ical "github.com/arran4/golang-ical"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
)

// unfold removes RFC 5545 line folding so substring checks can span folds.
func unfold(s string) string {
	s = strings.ReplaceAll(s, "\r\n ", "")
	return strings.ReplaceAll(s, "\r\n\t", "")
}

func TestGenerateICS_EmptySetRejected(t *testing.T) {
	if _, err := GenerateICS(nil); !errors.Is(err, common.ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
	if _, err := GenerateICS([]event.Event{}); !errors.Is(err, common.ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}

func TestGenerateICS_TimedEvent(t *testing.T) {
	payload, err := GenerateICS([]event.Event{timedEvent()})
	if err != nil {
		t.Fatal(err)
	}
	flat := unfold(payload)

	// floating local times, no Z suffix and no UTC conversion
	if !strings.Contains(flat, "DTSTART:20260120T160000") {
		t.Errorf("missing floating DTSTART:\n%s", flat)
	}
	if strings.Contains(flat, "DTSTART:20260120T160000Z") {
		t.Error("DTSTART must not carry a UTC designator")
	}
	if !strings.Contains(flat, "DTEND:20260120T173000") {
		t.Errorf("missing DTEND:\n%s", flat)
	}
	if !strings.Contains(flat, "CATEGORIES:meeting") {
		t.Error("missing CATEGORIES")
	}
	if !strings.Contains(flat, "LOCATION:MS Teams") {
		t.Error("missing LOCATION")
	}
	// embedded newlines in notes are escaped, never literal
	if !strings.Contains(flat, `Meeting ID: 123 456\nPasscode: abc`) {
		t.Errorf("notes not escaped:\n%s", flat)
	}
}

func TestGenerateICS_OpenEndedDefaultsToOneHour(t *testing.T) {
	ev := timedEvent()
	ev.EndTime = nil
	payload, err := GenerateICS([]event.Event{ev})
	if err != nil {
		t.Fatal(err)
	}
	flat := unfold(payload)
	if !strings.Contains(flat, "DURATION:PT1H") {
		t.Errorf("expected DURATION:PT1H:\n%s", flat)
	}
	if strings.Contains(flat, "DTEND") {
		t.Error("open-ended event must not emit DTEND")
	}
}

func TestGenerateICS_AllDay(t *testing.T) {
	payload, err := GenerateICS([]event.Event{allDayEvent()})
	if err != nil {
		t.Fatal(err)
	}
	flat := unfold(payload)
	if !strings.Contains(flat, "DTSTART;VALUE=DATE:20260706") {
		t.Errorf("expected date-valued DTSTART:\n%s", flat)
	}
	if !strings.Contains(flat, "DURATION:P1D") {
		t.Errorf("expected one-day DURATION:\n%s", flat)
	}
	if strings.Contains(flat, "DTEND") {
		t.Error("all-day event must not emit an explicit end instant")
	}
}

func TestGenerateICS_AllDayFlagIgnoresTimes(t *testing.T) {
	ev := allDayEvent()
	ev.StartTime = strptr("08:00")
	ev.EndTime = strptr("12:00")
	payload, err := GenerateICS([]event.Event{ev})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(unfold(payload), "DTSTART;VALUE=DATE:20260706") {
		t.Error("is_all_day must win over present times")
	}
}

func TestGenerateICS_Reminders(t *testing.T) {
	for _, ev := range []event.Event{timedEvent(), allDayEvent()} {
		payload, err := GenerateICS([]event.Event{ev})
		if err != nil {
			t.Fatal(err)
		}
		flat := unfold(payload)
		if got := strings.Count(flat, "BEGIN:VALARM"); got != 2 {
			t.Errorf("%s: expected 2 alarms, got %d", ev.Title, got)
		}
		if !strings.Contains(flat, "TRIGGER:-P1D") {
			t.Errorf("%s: missing day-before trigger", ev.Title)
		}
		if !strings.Contains(flat, "TRIGGER:-PT30M") {
			t.Errorf("%s: missing 30-minute trigger", ev.Title)
		}
	}
}

func TestGenerateICS_EncodingErrorNamesCause(t *testing.T) {
	ev := timedEvent()
	ev.Date = "20 Jan 2026"
	_, err := GenerateICS([]event.Event{ev})
	if !errors.Is(err, common.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if !strings.Contains(err.Error(), "20 Jan 2026") {
		t.Errorf("error must include the underlying reason: %v", err)
	}
}

func TestGenerateICS_TextEscaping(t *testing.T) {
	ev := timedEvent()
	ev.Title = "Racial Harmony; Day, finale"
	payload, err := GenerateICS([]event.Event{ev})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(unfold(payload), `SUMMARY:Racial Harmony\; Day\, finale`) {
		t.Errorf("summary not escaped:\n%s", payload)
	}
}

func TestGenerateICS_LinesFoldedAt75(t *testing.T) {
	ev := timedEvent()
	ev.Notes = strptr(strings.Repeat("all work and no play ", 20))
	payload, err := GenerateICS([]event.Event{ev})
	if err != nil {
		t.Fatal(err)
	}
	// every physical line, continuation lines with their leading space
	// included, stays within 75 octets
	for _, line := range strings.Split(payload, "\r\n") {
		if len(line) > 75 {
			t.Errorf("line exceeds 75 octets (%d): %q", len(line), line)
		}
	}
	// folding is lossless: unfolding restores the full description
	if !strings.Contains(unfold(payload), "DESCRIPTION:"+strings.Repeat("all work and no play ", 20)) {
		t.Error("unfolded payload lost description content")
	}
}

// TestGenerateICS_RoundTrip parses the payload back with a conformant
// iCalendar reader and checks the fields survive.
func TestGenerateICS_RoundTrip(t *testing.T) {
	ev := event.Event{
		Title:         "P4 Learning Journey",
		Date:          "2026-01-20",
		StartTime:     strptr("08:30"),
		EndTime:       strptr("13:00"),
		Location:      strptr("Kreta Ayer Heritage Gallery"),
		EventType:     event.TypeFieldTrip,
		Attire:        strptr("PE attire"),
		ThingsToBring: []string{"water bottle", "raincoat"},
		Notes:         strptr("Consent form required"),
		IsAllDay:      false,
	}
	payload, err := GenerateICS([]event.Event{ev})
	if err != nil {
		t.Fatal(err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("payload is not parseable iCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 VEVENT, got %d", len(events))
	}
	ve := events[0]

	if p := ve.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != ev.Title {
		t.Errorf("summary did not survive: %+v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p == nil || p.Value != *ev.Location {
		t.Errorf("location did not survive: %+v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p == nil || p.Value != "field_trip" {
		t.Errorf("categories did not survive: %+v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p == nil || p.Value != "20260120T083000" {
		t.Errorf("start instant did not survive: %+v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p == nil || p.Value != "20260120T130000" {
		t.Errorf("end instant did not survive: %+v", p)
	}
}

package calendar

import (
	"testing"

	"github.com/jklim/schoolcal/internal/event"
)

func strptr(s string) *string { return &s }

func timedEvent() event.Event {
	return event.Event{
		Title:     "Parent-Teacher Meeting",
		Date:      "2026-01-20",
		StartTime: strptr("16:00"),
		EndTime:   strptr("17:30"),
		Location:  strptr("MS Teams"),
		EventType: event.TypeMeeting,
		Notes:     strptr("Meeting ID: 123 456\nPasscode: abc"),
		IsAllDay:  false,
	}
}

func allDayEvent() event.Event {
	return event.Event{
		Title:     "Youth Day Holiday",
		Date:      "2026-07-06",
		EventType: event.TypeHoliday,
		IsAllDay:  true,
	}
}

func TestBuildDescription_Order(t *testing.T) {
	ev := event.Event{
		Title:         "P4 Learning Journey",
		Date:          "2026-01-20",
		EventType:     event.TypeFieldTrip,
		Notes:         strptr("Dismissal at 14:00"),
		Attire:        strptr("PE attire"),
		ThingsToBring: []string{"water bottle", "raincoat"},
	}
	want := "Dismissal at 14:00\n\nAttire: PE attire\n\nThings to bring:\n- water bottle\n- raincoat"
	if got := BuildDescription(ev); got != want {
		t.Errorf("BuildDescription =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildDescription_AbsentPartsOmitted(t *testing.T) {
	ev := event.Event{Title: "X", Date: "2026-01-20", EventType: event.TypeOther}
	if got := BuildDescription(ev); got != "" {
		t.Errorf("expected empty description, got %q", got)
	}

	ev.Attire = strptr("School uniform")
	if got := BuildDescription(ev); got != "Attire: School uniform" {
		t.Errorf("single part must carry no separators, got %q", got)
	}
}

func TestBuildDescription_NilAndEmptyBringIdentical(t *testing.T) {
	withNil := event.Event{Title: "X", Date: "2026-01-20", EventType: event.TypeOther, Notes: strptr("n")}
	withEmpty := withNil
	withEmpty.ThingsToBring = []string{}

	a, b := BuildDescription(withNil), BuildDescription(withEmpty)
	if a != b {
		t.Errorf("nil vs empty things_to_bring differ: %q vs %q", a, b)
	}
	if a != "n" {
		t.Errorf("unexpected description %q", a)
	}
}

func TestIsWholeDay(t *testing.T) {
	tests := []struct {
		name  string
		ev    event.Event
		whole bool
	}{
		{"all-day flag", allDayEvent(), true},
		{"timed", timedEvent(), false},
		{"no start time", event.Event{Title: "X", Date: "2026-01-20", EventType: event.TypeOther}, true},
		{"empty start time", event.Event{Title: "X", Date: "2026-01-20", StartTime: strptr(""), EventType: event.TypeOther}, true},
		{
			// end without start is "no end time": the whole-day branch wins
			"end only",
			event.Event{Title: "X", Date: "2026-01-20", EndTime: strptr("10:00"), EventType: event.TypeOther},
			true,
		},
		{
			// all-day flag wins even when times are present
			"all-day with times",
			event.Event{Title: "X", Date: "2026-01-20", StartTime: strptr("09:00"), EndTime: strptr("10:00"), EventType: event.TypeOther, IsAllDay: true},
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWholeDay(tc.ev); got != tc.whole {
				t.Errorf("IsWholeDay = %v, want %v", got, tc.whole)
			}
		})
	}
}

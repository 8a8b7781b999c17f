// Package calendar encodes extracted events into two independent export
// forms: a portable ICS payload and per-event Google Calendar quick-add
// URLs. Source documents come from a single fixed locale, so every
// timestamp is local wall-clock in that zone; nothing here converts to UTC.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jklim/schoolcal/internal/event"
)

// Timezone is the fixed locale context for all encoded events.
const Timezone = "Asia/Singapore"

// DefaultDuration is the span assumed for timed events with no end time.
const DefaultDuration = time.Hour

// IsWholeDay reports whether ev is encoded as a whole-day entry. Both
// encoders route through this single classifier so they can never disagree
// on the all-day/timed decision. An end time without a start time lands in
// the whole-day branch, which also satisfies the "treat as no end time"
// rule for that malformed combination.
func IsWholeDay(ev event.Event) bool {
	return ev.IsAllDay || !ev.HasStartTime()
}

// BuildDescription assembles the human-readable event body: notes, then
// attire, then a bulleted things-to-bring block, each separated by a blank
// line. Absent parts are omitted entirely; a nil and an empty
// things_to_bring list produce identical output.
func BuildDescription(ev event.Event) string {
	var parts []string
	if ev.Notes != nil && *ev.Notes != "" {
		parts = append(parts, *ev.Notes)
	}
	if ev.Attire != nil && *ev.Attire != "" {
		parts = append(parts, "Attire: "+*ev.Attire)
	}
	if len(ev.ThingsToBring) > 0 {
		var b strings.Builder
		b.WriteString("Things to bring:")
		for _, item := range ev.ThingsToBring {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// parseDate parses the event's YYYY-MM-DD date as a local calendar day.
func parseDate(ev event.Event) (time.Time, error) {
	d, err := time.Parse("2006-01-02", ev.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("event %q: invalid date %q: %v", ev.Title, ev.Date, err)
	}
	return d, nil
}

// parseClock parses an HH:MM 24-hour clock time.
func parseClock(ev event.Event, s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if ok {
		var herr, merr error
		hour, herr = strconv.Atoi(hh)
		minute, merr = strconv.Atoi(mm)
		if herr == nil && merr == nil && hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			return hour, minute, nil
		}
	}
	return 0, 0, fmt.Errorf("event %q: invalid time %q", ev.Title, s)
}

// span resolves the start and end instants of a timed event. The end time
// is taken as given even when it precedes the start (possible overnight
// event or source error; passed through unvalidated on purpose). A missing
// end time yields DefaultDuration from the start, rolling into the next
// day when needed.
func span(ev event.Event, day time.Time) (start, end time.Time, err error) {
	sh, sm, err := parseClock(ev, *ev.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)

	if ev.HasEndTime() {
		eh, em, err := parseClock(ev, *ev.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)
		return start, end, nil
	}
	return start, start.Add(DefaultDuration), nil
}

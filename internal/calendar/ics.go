package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
)

const (
	icsProdID    = "-//schoolcal//school event extractor//EN"
	icsCalName   = "School Events"
	icsUIDSuffix = "@schoolcal"
)

// DefaultICSFilename is the download name offered for the combined payload.
const DefaultICSFilename = "school-events.ics"

// GenerateICS encodes the events as a single iCalendar payload.
//
// Encoding rules per event:
//   - whole-day (all-day flag or no start time): DTSTART;VALUE=DATE with a
//     one-day DURATION, no explicit end instant
//   - timed with end: floating local DTSTART/DTEND
//   - timed without end: floating local DTSTART with DURATION:PT1H
//
// Every event carries two display reminders (one day and 30 minutes before
// the start) and a CATEGORIES tag equal to its event_type.
//
// Zero events is a caller bug and fails with common.ErrNoEvents; any
// malformed record fails with common.ErrEncoding wrapping the reason.
func GenerateICS(events []event.Event) (string, error) {
	if len(events) == 0 {
		return "", common.ErrNoEvents
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+icsProdID)
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")
	writeLine(&b, "X-WR-CALNAME:"+icsCalName)
	writeLine(&b, "X-WR-TIMEZONE:"+Timezone)

	now := time.Now().UTC().Format("20060102T150405Z")
	for i, ev := range events {
		if err := writeEvent(&b, ev, now); err != nil {
			return "", fmt.Errorf("%w: event %d: %v", common.ErrEncoding, i, err)
		}
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String(), nil
}

func writeEvent(b *strings.Builder, ev event.Event, dtstamp string) error {
	day, err := parseDate(ev)
	if err != nil {
		return err
	}

	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, "UID:"+uuid.New().String()+icsUIDSuffix)
	writeLine(b, "DTSTAMP:"+dtstamp)
	writeLine(b, "SUMMARY:"+escapeText(ev.Title))
	if desc := BuildDescription(ev); desc != "" {
		writeLine(b, "DESCRIPTION:"+escapeText(desc))
	}
	if ev.Location != nil && *ev.Location != "" {
		writeLine(b, "LOCATION:"+escapeText(*ev.Location))
	}
	writeLine(b, "CATEGORIES:"+escapeText(string(ev.EventType)))
	writeLine(b, "STATUS:CONFIRMED")

	if IsWholeDay(ev) {
		writeLine(b, "DTSTART;VALUE=DATE:"+day.Format("20060102"))
		writeLine(b, "DURATION:P1D")
	} else {
		start, end, err := span(ev, day)
		if err != nil {
			return err
		}
		// Floating local times: the fixed locale context makes a
		// zone-qualified form unnecessary, and UTC conversion would be wrong.
		writeLine(b, "DTSTART:"+start.Format("20060102T150405"))
		if ev.HasEndTime() {
			writeLine(b, "DTEND:"+end.Format("20060102T150405"))
		} else {
			writeLine(b, "DURATION:PT1H")
		}
	}

	writeAlarm(b, "-P1D", "Reminder: 1 day before")
	writeAlarm(b, "-PT30M", "Reminder: 30 minutes before")

	writeLine(b, "END:VEVENT")
	return nil
}

func writeAlarm(b *strings.Builder, trigger, description string) {
	writeLine(b, "BEGIN:VALARM")
	writeLine(b, "ACTION:DISPLAY")
	writeLine(b, "DESCRIPTION:"+escapeText(description))
	writeLine(b, "TRIGGER:"+trigger)
	writeLine(b, "END:VALARM")
}

// escapeText escapes an iCalendar TEXT value (RFC 5545 §3.3.11).
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// writeLine emits one content line, folded at 75 octets with CRLF line
// endings. The leading fold space counts toward the limit, so continuation
// chunks carry at most 74 octets of content. Folding splits on byte
// boundaries only at rune starts so multi-byte characters stay intact.
func writeLine(b *strings.Builder, line string) {
	const limit = 75
	max := limit
	for len(line) > max {
		cut := max
		for cut > 1 && !isRuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		max = limit - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}

// Package export renders extracted events as an XLSX review sheet, one
// row per event, for parents who want to double-check the extraction
// before importing anything.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jklim/schoolcal/internal/event"
)

const sheetName = "Events"

// EventsXLSX returns an XLSX workbook (as bytes) listing the events in
// their working-set order.
func EventsXLSX(events []event.Event) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{
		"Date",
		"Title",
		"Type",
		"All Day",
		"Start",
		"End",
		"Location",
		"Attire",
		"Things To Bring",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for row, ev := range events {
		values := []any{
			ev.Date,
			ev.Title,
			string(ev.EventType),
			ev.IsAllDay,
			deref(ev.StartTime),
			deref(ev.EndTime),
			deref(ev.Location),
			deref(ev.Attire),
			strings.Join(ev.ThingsToBring, ", "),
			deref(ev.Notes),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

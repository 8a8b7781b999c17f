package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jklim/schoolcal/internal/calendar"
	"github.com/jklim/schoolcal/internal/common"
	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/export"
	"github.com/jklim/schoolcal/internal/extract"
	"github.com/jklim/schoolcal/internal/llm/openai"
	"github.com/jklim/schoolcal/internal/raster"
	"github.com/jklim/schoolcal/internal/settings"
)

var (
	extractICSOut  string
	extractXLSXOut string
	extractAsJSON  bool
	extractURLs    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <notice.pdf>",
	Short: "Extract events from a school notice PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractICSOut, "ics", "", "Write the combined ICS file to this path")
	extractCmd.Flags().Lookup("ics").NoOptDefVal = calendar.DefaultICSFilename
	extractCmd.Flags().StringVar(&extractXLSXOut, "xlsx", "", "Write an XLSX review sheet to this path")
	extractCmd.Flags().BoolVar(&extractAsJSON, "json", false, "Print extracted events as JSON")
	extractCmd.Flags().BoolVar(&extractURLs, "urls", false, "Print a Google Calendar quick-add link per event")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := common.LoadConfig()
	prefs := settings.Load()

	pdf, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	extractor := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	renderer := raster.New(raster.Config{
		Pdftoppm:    cfg.Raster.Pdftoppm,
		TargetWidth: cfg.Raster.TargetWidth,
		JPEGQuality: cfg.Raster.JPEGQuality,
	}, logger)
	svc := extract.NewService(extractor, renderer, cfg.LLM.Timeout, logger)

	customPrompt := ""
	if prefs.CustomPrompt != nil {
		customPrompt = *prefs.CustomPrompt
	}

	result, err := svc.ExtractFromPDF(context.Background(), pdf, customPrompt, &prefs.EnabledFields)
	if err != nil {
		_, msg := extract.Classify(err)
		return fmt.Errorf("%s", msg)
	}

	if extractAsJSON {
		data, err := json.MarshalIndent(result.Events, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		printEvents(result.Events)
	}

	if extractURLs && len(result.Events) > 0 {
		urls, err := calendar.GoogleCalendarURLs(result.Events)
		if err != nil {
			return err
		}
		fmt.Println()
		for i, u := range urls {
			fmt.Printf("%d. %s\n", i+1, u)
		}
	}

	if extractICSOut != "" {
		if result.ICSContent == "" {
			fmt.Fprintln(os.Stderr, "no events found; skipping ICS output")
		} else if err := os.WriteFile(extractICSOut, []byte(result.ICSContent), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractICSOut, err)
		} else {
			fmt.Fprintf(os.Stderr, "wrote %s\n", extractICSOut)
		}
	}

	if extractXLSXOut != "" {
		data, err := export.EventsXLSX(result.Events)
		if err != nil {
			return fmt.Errorf("build xlsx: %w", err)
		}
		if err := os.WriteFile(extractXLSXOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractXLSXOut, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", extractXLSXOut)
	}

	return nil
}

func printEvents(events []event.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}
	for i, ev := range events {
		fmt.Printf("%d. %s  [%s]\n", i+1, ev.Title, ev.EventType)
		when := ev.Date
		if ev.IsAllDay || !ev.HasStartTime() {
			when += " (all day)"
		} else {
			when += " " + *ev.StartTime
			if ev.HasEndTime() {
				when += "–" + *ev.EndTime
			}
		}
		fmt.Printf("   %s\n", when)
		if ev.Location != nil && *ev.Location != "" {
			fmt.Printf("   at %s\n", *ev.Location)
		}
		if desc := calendar.BuildDescription(ev); desc != "" {
			fmt.Printf("   %s\n", indent(desc, "   "))
		}
	}
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

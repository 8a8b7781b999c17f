package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/settings"
)

var (
	settingsPrompt  string
	settingsEnable  []string
	settingsDisable []string
	settingsReset   bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change extraction preferences",
	Long: `Without flags, prints the current preferences. Flags update the
stored settings file; title and date cannot be disabled.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsPrompt, "prompt", "", "Set a custom extraction prompt (empty string clears it)")
	settingsCmd.Flags().StringSliceVar(&settingsEnable, "enable", nil, "Field names to enable")
	settingsCmd.Flags().StringSliceVar(&settingsDisable, "disable", nil, "Field names to disable")
	settingsCmd.Flags().BoolVar(&settingsReset, "reset", false, "Reset all preferences to defaults")
}

func runSettings(cmd *cobra.Command, args []string) error {
	prefs := settings.Load()
	changed := false

	if settingsReset {
		prefs = settings.Default()
		changed = true
	}

	if cmd.Flags().Changed("prompt") {
		if settingsPrompt == "" {
			prefs.CustomPrompt = nil
		} else {
			prefs.CustomPrompt = &settingsPrompt
		}
		changed = true
	}

	for _, name := range settingsEnable {
		if err := setField(&prefs.EnabledFields, name, true); err != nil {
			return err
		}
		changed = true
	}
	for _, name := range settingsDisable {
		if err := setField(&prefs.EnabledFields, name, false); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		if err := settings.Save(prefs); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}

	printSettings(prefs)
	return nil
}

func setField(f *event.EnabledFields, name string, enabled bool) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title", "date":
		if !enabled {
			return fmt.Errorf("field %q cannot be disabled", name)
		}
	case "start_time":
		f.StartTime = enabled
	case "end_time":
		f.EndTime = enabled
	case "location":
		f.Location = enabled
	case "event_type":
		f.EventType = enabled
	case "attire":
		f.Attire = enabled
	case "things_to_bring":
		f.ThingsToBring = enabled
	case "notes":
		f.Notes = enabled
	case "is_all_day":
		f.IsAllDay = enabled
	default:
		return fmt.Errorf("unknown field %q (known: %s)", name, strings.Join(event.FieldNames, ", "))
	}
	return nil
}

func printSettings(prefs settings.Settings) {
	if prefs.CustomPrompt == nil {
		fmt.Println("custom prompt: (default)")
	} else {
		fmt.Printf("custom prompt: %d chars\n", len(*prefs.CustomPrompt))
	}
	disabled := prefs.EnabledFields.Disabled()
	if len(disabled) == 0 {
		fmt.Println("fields: all enabled")
	} else {
		fmt.Printf("disabled fields: %s\n", strings.Join(disabled, ", "))
	}
}

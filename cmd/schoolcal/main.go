package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schoolcal",
	Short: "schoolcal – extract calendar events from school notice PDFs",
	Long: `schoolcal turns scanned school notices into calendar events.
It renders the PDF pages, sends them to a vision model for structured
extraction, and exports the results as an ICS file, Google Calendar
quick-add links, or an XLSX review sheet.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(settingsCmd)
}

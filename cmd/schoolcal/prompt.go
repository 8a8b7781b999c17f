package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jklim/schoolcal/internal/llm"
	"github.com/jklim/schoolcal/internal/settings"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the extraction prompt that would be sent to the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs := settings.Load()
		custom := ""
		if prefs.CustomPrompt != nil {
			custom = *prefs.CustomPrompt
		}
		fmt.Println(llm.BuildPrompt(custom, &prefs.EnabledFields))
		return nil
	},
}

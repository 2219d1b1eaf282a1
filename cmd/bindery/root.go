package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindery",
		Short: "Photobook generation and inspection tool",
		Long: `Bindery builds print-ready photobook documents from photo lists and
works on saved documents offline: generating books, filling empty photo
slots, and reporting document structure.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newAutofillCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}

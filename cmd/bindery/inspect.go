package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bindery/bindery/internal/document"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <book.json>",
		Short: "Report the structure of a saved document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read book: %w", err)
			}
			book, err := document.LoadJSON(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dims := book.Config.PageDimensions()
			fmt.Fprintf(out, "book %s\n", book.ID)
			fmt.Fprintf(out, "  size: %s %s (%.0fx%.0f px)\n",
				book.Config.PageSize, book.Config.Orientation, dims.Width, dims.Height)
			if book.SpineTitle != "" {
				fmt.Fprintf(out, "  spine: %q\n", book.SpineTitle)
			}
			fmt.Fprintf(out, "  pages: %d, spreads: %d\n", len(book.Pages), len(document.BuildSpreads(book)))

			elements, placeholders := 0, 0
			for i := range book.Pages {
				page := &book.Pages[i]
				elements += len(page.Elements)
				for j := range page.Elements {
					el := &page.Elements[j]
					if el.Type == document.ElementTypePhoto && el.Photo != nil && el.Photo.Placeholder() {
						placeholders++
					}
				}
			}
			fmt.Fprintf(out, "  elements: %d (%d empty photo slots)\n", elements, placeholders)

			for i := range book.Pages {
				page := &book.Pages[i]
				fmt.Fprintf(out, "  page %2d  %-14s %-16s %d element(s)\n",
					page.PageNumber, page.Type, page.Layout.Name, len(page.Elements))
			}
			return nil
		},
	}

	return cmd
}

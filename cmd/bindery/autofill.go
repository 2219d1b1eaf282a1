package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/layout"
)

func newAutofillCmd() *cobra.Command {
	var (
		bookPath   string
		photosPath string
		outPath    string
		reuse      bool
	)

	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Fill empty photo slots in a saved document",
		Long: `Loads a document and a photo list, fills every empty photo slot on
editable pages by aspect-ratio match, and writes the updated document.
Photos already placed in the book are skipped unless --reuse is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookData, err := os.ReadFile(bookPath)
			if err != nil {
				return fmt.Errorf("read book: %w", err)
			}
			book, err := document.LoadJSON(bookData)
			if err != nil {
				return err
			}

			photosData, err := os.ReadFile(photosPath)
			if err != nil {
				return fmt.Errorf("read photos: %w", err)
			}
			var photos []document.Photo
			if err := json.Unmarshal(photosData, &photos); err != nil {
				return fmt.Errorf("parse photos: %w", err)
			}

			stats := layout.AutofillImages(book, photos, layout.AutofillOptions{
				SkipUsedImages: !reuse,
			})

			if outPath == "" {
				outPath = bookPath
			}
			out, err := document.ExportJSON(book)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, out, 0644); err != nil {
				return fmt.Errorf("write book: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "filled %d slot(s) across %d spread(s), %d left empty\n",
				stats.SlotsFilled, stats.SpreadsAffected, stats.EmptySlots)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookPath, "book", "", "Document to fill (required)")
	cmd.Flags().StringVar(&photosPath, "photos", "", "JSON file holding the photo list (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (defaults to overwriting --book)")
	cmd.Flags().BoolVar(&reuse, "reuse", false, "Allow photos already placed in the book")
	cmd.MarkFlagRequired("book")
	cmd.MarkFlagRequired("photos")

	return cmd
}

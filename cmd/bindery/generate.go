package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/layout"
)

func newGenerateCmd() *cobra.Command {
	var (
		photosPath  string
		outPath     string
		pageSize    string
		orientation string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a photobook document from a photo list",
		Long: `Reads a JSON array of photos and builds a complete photobook: cover,
end-papers, content pages and back cover. The result is written as a
standalone document that the editor can load.`,
		Example: `  # Generate an A4 portrait book
  bindery generate --photos photos.json --out book.json

  # Square landscape
  bindery generate --photos photos.json --page-size Square --orientation landscape`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(photosPath)
			if err != nil {
				return fmt.Errorf("read photos: %w", err)
			}

			var photos []document.Photo
			if err := json.Unmarshal(data, &photos); err != nil {
				return fmt.Errorf("parse photos: %w", err)
			}
			if len(photos) == 0 {
				return fmt.Errorf("no photos in %s", photosPath)
			}

			cfg := document.Config{
				PageSize:    document.PageSize(pageSize),
				Orientation: document.Orientation(orientation),
			}

			book := layout.GeneratePhotoBook(photos, cfg)
			out, err := document.ExportJSON(book)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, out, 0644); err != nil {
				return fmt.Errorf("write book: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %s: %d pages from %d photos\n",
				outPath, len(book.Pages), len(photos))
			return nil
		},
	}

	cmd.Flags().StringVar(&photosPath, "photos", "", "JSON file holding the photo list (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "book.json", "Output document path")
	cmd.Flags().StringVar(&pageSize, "page-size", "A4", "Page size (A4 or Square)")
	cmd.Flags().StringVar(&orientation, "orientation", "portrait", "Page orientation (portrait or landscape)")
	cmd.MarkFlagRequired("photos")

	return cmd
}

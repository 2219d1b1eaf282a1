package layout

import (
	"fmt"
	"time"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/typeid"
)

// Content photos are spread over at least this many interior pages.
const minContentPages = 18

// Text overlays paint above any slot grid.
const overlayZIndex = 100

const endPaperText = "This page is part of the binding and cannot be edited."

// GeneratePhotoBook builds a complete document from an ordered photo list:
// a cover carrying the largest photo plus a title placeholder, a fixed
// front end-paper, content pages on an alternating two-photo/one-photo
// schedule, a fixed back end-paper, and a back cover with a four-photo
// grid and a year caption.
func GeneratePhotoBook(photos []document.Photo, cfg document.Config) *document.PhotoBook {
	now := time.Now()
	book := &document.PhotoBook{
		ID:        typeid.NewBookID(),
		CreatedAt: now,
		UpdatedAt: now,
		Config:    cfg,
	}

	coverPhoto, remaining := splitCoverPhoto(photos)

	// The last four photos are reserved for the back-cover grid.
	backCount := 4
	if backCount > len(remaining) {
		backCount = len(remaining)
	}
	contentPhotos := remaining[:len(remaining)-backCount]
	backPhotos := remaining[len(remaining)-backCount:]

	book.Pages = append(book.Pages, buildCoverPage(coverPhoto))
	book.Pages = append(book.Pages, buildEndPaperPage())
	book.Pages = append(book.Pages, buildContentPages(contentPhotos)...)
	book.Pages = append(book.Pages, buildEndPaperPage())
	book.Pages = append(book.Pages, buildBackCoverPage(backPhotos, now.Year()))

	book.Renumber()
	return book
}

// splitCoverPhoto picks the largest photo by pixel area for the cover and
// returns the rest in their original order.
func splitCoverPhoto(photos []document.Photo) (*document.Photo, []document.Photo) {
	if len(photos) == 0 {
		return nil, nil
	}

	coverIdx := 0
	coverArea := photos[0].Width * photos[0].Height
	for i := 1; i < len(photos); i++ {
		if area := photos[i].Width * photos[i].Height; area > coverArea {
			coverIdx = i
			coverArea = area
		}
	}

	remaining := make([]document.Photo, 0, len(photos)-1)
	remaining = append(remaining, photos[:coverIdx]...)
	remaining = append(remaining, photos[coverIdx+1:]...)
	return &photos[coverIdx], remaining
}

func buildCoverPage(cover *document.Photo) document.Page {
	preset, _ := PresetByID("cover-single")
	page := document.Page{
		ID:   typeid.NewPageID(),
		Type: document.PageTypeCover,
		Layout: document.Layout{
			ID:       preset.ID,
			Name:     preset.Name,
			Template: preset.Template,
		},
		Background: &document.Background{Type: document.BackgroundColor, Color: "#ffffff"},
	}

	if len(preset.Template.PhotoSlots) > 0 {
		slot := preset.Template.PhotoSlots[0]
		photoID := ""
		if cover != nil {
			photoID = cover.ID
		}
		page.Elements = append(page.Elements, photoElementForSlot(slot, photoID))
	}

	// Empty title placeholder above the photo.
	title := textElement("", 10, 78, 80, 10)
	title.Text.Align = "center"
	page.Elements = append(page.Elements, title)

	return page
}

func buildEndPaperPage() document.Page {
	page := document.Page{
		ID:   typeid.NewPageID(),
		Type: document.PageTypeBackOfCover,
		Layout: document.Layout{
			ID:   "empty",
			Name: "Empty",
		},
		Background: &document.Background{Type: document.BackgroundColor, Color: "#f3f4f6"},
	}

	note := textElement(endPaperText, 10, 45, 80, 10)
	note.Text.Align = "center"
	note.Text.FontSize = 90
	note.Text.Color = "#9ca3af"
	page.Elements = append(page.Elements, note)

	return page
}

// buildContentPages distributes photos over at least minContentPages
// interior pages. The schedule alternates two-photo and one-photo pages
// (even indices prefer two while the budget lasts) so density varies
// instead of front-loading. When photos run short, trailing pages carry
// empty placeholders.
func buildContentPages(photos []document.Photo) []document.Page {
	targetPages := minContentPages
	if len(photos) > 2*targetPages {
		targetPages = (len(photos) + 1) / 2
	}

	twoPhotoPages := len(photos) - targetPages
	if twoPhotoPages < 0 {
		twoPhotoPages = 0
	}
	if twoPhotoPages > targetPages {
		twoPhotoPages = targetPages
	}
	onePhotoPages := targetPages - twoPhotoPages

	pages := make([]document.Page, 0, targetPages)
	next := 0
	for i := 0; i < targetPages; i++ {
		slots := 1
		if (i%2 == 0 && twoPhotoPages > 0) || onePhotoPages == 0 {
			slots = 2
			twoPhotoPages--
		} else {
			onePhotoPages--
		}

		page := document.Page{
			ID:   typeid.NewPageID(),
			Type: document.PageTypeContent,
			Layout: document.Layout{
				ID:       fmt.Sprintf("auto-%d", slots),
				Name:     fmt.Sprintf("%d Photo Layout", slots),
				Template: document.Template{PhotoSlots: SlotsForCount(slots)},
			},
			Background: &document.Background{Type: document.BackgroundColor, Color: "#ffffff"},
		}

		for _, slot := range page.Layout.Template.PhotoSlots {
			photoID := ""
			if next < len(photos) {
				photoID = photos[next].ID
				next++
			}
			page.Elements = append(page.Elements, photoElementForSlot(slot, photoID))
		}

		pages = append(pages, page)
	}

	return pages
}

func buildBackCoverPage(photos []document.Photo, year int) document.Page {
	preset, _ := PresetByID("grid-4")
	page := document.Page{
		ID:   typeid.NewPageID(),
		Type: document.PageTypeBackCover,
		Layout: document.Layout{
			ID:       preset.ID,
			Name:     preset.Name,
			Template: preset.Template,
		},
		Background: &document.Background{Type: document.BackgroundColor, Color: "#f3f4f6"},
	}

	for i, slot := range preset.Template.PhotoSlots {
		photoID := ""
		if i < len(photos) {
			photoID = photos[i].ID
		}
		page.Elements = append(page.Elements, photoElementForSlot(slot, photoID))
	}

	caption := textElement(fmt.Sprintf("%d", year), 35, 90, 30, 6)
	caption.Text.Align = "center"
	caption.Text.FontSize = 120
	page.Elements = append(page.Elements, caption)

	return page
}

// photoElementForSlot creates a photo element sized and positioned by its
// slot; z comes from the slot's paint order.
func photoElementForSlot(slot document.PhotoSlot, photoID string) document.Element {
	return document.Element{
		ID:     typeid.NewElementID(),
		Type:   document.ElementTypePhoto,
		X:      slot.X,
		Y:      slot.Y,
		Width:  slot.Width,
		Height: slot.Height,
		ZIndex: slot.PaintOrder,
		Photo: &document.PhotoProps{
			PhotoID: photoID,
			SlotID:  slot.ID,
		},
	}
}

// textElement creates a text overlay with the default editor styling and
// an overlay z-index so it paints above the photo grid.
func textElement(content string, x, y, w, h float64) document.Element {
	return document.Element{
		ID:     typeid.NewElementID(),
		Type:   document.ElementTypeText,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		ZIndex: overlayZIndex,
		Text: &document.TextProps{
			Content:    content,
			FontFamily: "Londrina Solid",
			FontSize:   252.5,
			FontWeight: "900",
			FontStyle:  "normal",
			Align:      "left",
			Color:      "#000000",
			LineHeight: 1.2,
		},
	}
}

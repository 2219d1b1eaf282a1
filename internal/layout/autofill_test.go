package layout

import (
	"testing"

	"github.com/bindery/bindery/internal/document"
)

func photosOf(ids ...string) []document.Photo {
	out := make([]document.Photo, len(ids))
	for i, id := range ids {
		out[i] = document.Photo{ID: id, Width: 1000, Height: 1000}
	}
	return out
}

func emptyBook(slotCounts ...int) *document.PhotoBook {
	b := &document.PhotoBook{ID: "book_fill"}
	for _, n := range slotCounts {
		page := contentPage(make([]string, n)...)
		b.Pages = append(b.Pages, *page)
	}
	b.Renumber()
	return b
}

func TestAutofillFillsInDocumentOrder(t *testing.T) {
	book := emptyBook(2, 1)
	photos := photosOf("p1", "p2", "p3")

	stats := AutofillImages(book, photos, AutofillOptions{SkipUsedImages: true})

	if stats.SlotsFilled != 3 {
		t.Fatalf("slots filled = %d, want 3", stats.SlotsFilled)
	}
	if stats.EmptySlots != 0 {
		t.Errorf("empty slots = %d, want 0", stats.EmptySlots)
	}

	var placed []string
	for i := range book.Pages {
		for j := range book.Pages[i].Elements {
			el := &book.Pages[i].Elements[j]
			if el.Type == document.ElementTypePhoto && el.Photo.PhotoID != "" {
				placed = append(placed, el.Photo.PhotoID)
			}
		}
	}
	// Same-aspect photos tie, so document order decides.
	want := []string{"p1", "p2", "p3"}
	for i := range want {
		if placed[i] != want[i] {
			t.Errorf("placement %d = %s, want %s", i, placed[i], want[i])
		}
	}
}

func TestAutofillPrefersAspectMatch(t *testing.T) {
	book := emptyBook(1)
	slot := &book.Pages[0].Elements[0]
	slot.Width = 60
	slot.Height = 20 // aspect 3

	photos := []document.Photo{
		{ID: "square", Width: 1000, Height: 1000},
		{ID: "panorama", Width: 3000, Height: 1000},
	}

	AutofillImages(book, photos, AutofillOptions{SkipUsedImages: true})

	if got := slot.Photo.PhotoID; got != "panorama" {
		t.Errorf("wide slot took %q, want panorama", got)
	}
}

func TestAutofillSkipsUsedPhotos(t *testing.T) {
	book := emptyBook(2)
	book.Pages[0].Elements[0].Photo.PhotoID = "p1"

	stats := AutofillImages(book, photosOf("p1", "p2"), AutofillOptions{SkipUsedImages: true})

	if stats.SlotsFilled != 1 {
		t.Fatalf("slots filled = %d, want 1", stats.SlotsFilled)
	}
	if got := book.Pages[0].Elements[1].Photo.PhotoID; got != "p2" {
		t.Errorf("placeholder took %q, want p2", got)
	}
}

func TestAutofillReuseAllowsDuplicates(t *testing.T) {
	book := emptyBook(3)
	stats := AutofillImages(book, photosOf("p1"), AutofillOptions{SkipUsedImages: false})

	if stats.SlotsFilled != 3 {
		t.Fatalf("slots filled = %d, want 3", stats.SlotsFilled)
	}
	for i, el := range book.Pages[0].Elements {
		if el.Photo.PhotoID != "p1" {
			t.Errorf("slot %d = %q, want p1", i, el.Photo.PhotoID)
		}
	}
}

func TestAutofillExhaustionIsIdempotent(t *testing.T) {
	book := emptyBook(3)
	photos := photosOf("p1")

	first := AutofillImages(book, photos, AutofillOptions{SkipUsedImages: true})
	if first.SlotsFilled != 1 || first.EmptySlots != 2 {
		t.Fatalf("first run = %+v, want 1 filled 2 empty", first)
	}

	second := AutofillImages(book, photos, AutofillOptions{SkipUsedImages: true})
	if second.SlotsFilled != 0 {
		t.Errorf("second run filled %d slots, want 0", second.SlotsFilled)
	}
	if second.EmptySlots != 2 {
		t.Errorf("second run empty = %d, want 2", second.EmptySlots)
	}
}

func TestAutofillRespectsTargetPages(t *testing.T) {
	book := emptyBook(1, 1)
	target := book.Pages[1].ID

	stats := AutofillImages(book, photosOf("p1", "p2"), AutofillOptions{
		SkipUsedImages: true,
		TargetPageIDs:  []string{target},
	})

	if stats.SlotsFilled != 1 {
		t.Fatalf("slots filled = %d, want 1", stats.SlotsFilled)
	}
	if book.Pages[0].Elements[0].Photo.PhotoID != "" {
		t.Error("untargeted page was filled")
	}
	if book.Pages[1].Elements[0].Photo.PhotoID == "" {
		t.Error("targeted page left empty")
	}
}

func TestAutofillIgnoresLockedSurfaces(t *testing.T) {
	book := emptyBook(1)
	book.Pages[0].Type = document.PageTypeBackOfCover

	stats := AutofillImages(book, photosOf("p1"), AutofillOptions{SkipUsedImages: true})
	if stats.SlotsFilled != 0 {
		t.Errorf("filled %d slots on a fixed surface, want 0", stats.SlotsFilled)
	}
}

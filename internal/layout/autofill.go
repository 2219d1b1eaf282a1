package layout

import (
	"math"

	"github.com/bindery/bindery/internal/document"
)

// AutofillOptions selects which photos and pages autofill may touch.
type AutofillOptions struct {
	// SkipUsedImages excludes photos already referenced anywhere in the
	// book and consumes each photo at most once during the run.
	SkipUsedImages bool
	// TargetPageIDs restricts the fill to the named pages. Empty means
	// every editable page.
	TargetPageIDs []string
}

// AutofillStats reports what an autofill run changed.
type AutofillStats struct {
	SlotsFilled     int `json:"slotsFilled"`
	SpreadsAffected int `json:"spreadsAffected"`
	EmptySlots      int `json:"emptySlots"`
}

// AutofillImages assigns photos to empty photo-element placeholders across
// the book in scan order. Each placeholder takes the candidate whose
// aspect ratio sits closest to the slot's, with document order breaking
// ties. Running out of candidates is not an error: remaining placeholders
// stay empty and are counted in the stats, which makes a second run with
// SkipUsedImages a no-op once the unused pool is exhausted.
func AutofillImages(book *document.PhotoBook, photos []document.Photo, opts AutofillOptions) AutofillStats {
	target := make(map[string]bool, len(opts.TargetPageIDs))
	for _, id := range opts.TargetPageIDs {
		target[id] = true
	}

	var pool []document.Photo
	if opts.SkipUsedImages {
		used := book.UsedPhotoIDs()
		for _, p := range photos {
			if !used[p.ID] {
				pool = append(pool, p)
			}
		}
	} else {
		pool = append(pool, photos...)
	}

	var stats AutofillStats
	affected := make(map[string]bool)

	for i := range book.Pages {
		page := &book.Pages[i]
		if !page.Editable() {
			continue
		}
		if len(target) > 0 && !target[page.ID] {
			continue
		}

		for j := range page.Elements {
			el := &page.Elements[j]
			if el.Type != document.ElementTypePhoto || el.Photo == nil || !el.Photo.Placeholder() {
				continue
			}

			idx := bestFit(pool, el.Width, el.Height)
			if idx < 0 {
				stats.EmptySlots++
				continue
			}

			el.Photo.PhotoID = pool[idx].ID
			stats.SlotsFilled++
			affected[page.ID] = true

			if opts.SkipUsedImages {
				pool = append(pool[:idx], pool[idx+1:]...)
			}
		}
	}

	if len(affected) > 0 {
		for _, spread := range document.BuildSpreads(book) {
			if (spread.Left != nil && affected[spread.Left.ID]) ||
				(spread.Right != nil && affected[spread.Right.ID]) {
				stats.SpreadsAffected++
			}
		}
		book.Touch()
	}

	return stats
}

// bestFit picks the pool index whose photo aspect is nearest the slot
// aspect. Ties keep the earliest photo, so document order remains the
// authoritative fallback.
func bestFit(pool []document.Photo, slotW, slotH float64) int {
	if len(pool) == 0 {
		return -1
	}

	slotAspect := 1.0
	if slotH != 0 {
		slotAspect = slotW / slotH
	}

	best := 0
	bestDist := math.Abs(pool[0].Aspect() - slotAspect)
	for i := 1; i < len(pool); i++ {
		if d := math.Abs(pool[i].Aspect() - slotAspect); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

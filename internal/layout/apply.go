package layout

import (
	"sort"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/typeid"
)

// ApplyTemplateToPage attaches a new layout to the page and remaps the
// existing photo elements onto the new slot set index-for-index: slot 0
// takes photo element 0, and so on. Elements beyond the new slot count
// are dropped (their photo reference is unlinked from the page, never
// deleted from the pool); slots beyond the existing element count become
// empty placeholders. Non-photo elements are preserved unchanged.
func ApplyTemplateToPage(page *document.Page, layout document.Layout) {
	slots := layout.Template.PhotoSlots

	var photoEls []document.Element
	var otherEls []document.Element
	for _, el := range page.Elements {
		if el.Type == document.ElementTypePhoto {
			photoEls = append(photoEls, el)
		} else {
			otherEls = append(otherEls, el)
		}
	}

	nextZ := 0
	newEls := make([]document.Element, 0, len(slots)+len(otherEls))
	for i, slot := range slots {
		var el document.Element
		if i < len(photoEls) {
			el = photoEls[i]
		} else {
			el = document.Element{
				ID:    typeid.NewElementID(),
				Type:  document.ElementTypePhoto,
				Photo: &document.PhotoProps{},
			}
		}
		el.X = slot.X
		el.Y = slot.Y
		el.Width = slot.Width
		el.Height = slot.Height
		el.Photo.SlotID = slot.ID
		el.ZIndex = nextZ
		nextZ++
		newEls = append(newEls, el)
	}

	// Overlays keep painting above the slot grid, in their old relative
	// order, with z reassigned so no two elements ever tie.
	sort.SliceStable(otherEls, func(i, j int) bool { return otherEls[i].ZIndex < otherEls[j].ZIndex })
	for _, el := range otherEls {
		el.ZIndex = nextZ
		nextZ++
		newEls = append(newEls, el)
	}

	page.Layout = layout
	page.Elements = newEls
}

// RelocateToSlots moves each slot-bound photo element to its slot's
// current geometry. Used after a shuffle, where slot identities survive
// but positions move.
func RelocateToSlots(page *document.Page) {
	byID := make(map[string]document.PhotoSlot, len(page.Layout.Template.PhotoSlots))
	for _, s := range page.Layout.Template.PhotoSlots {
		byID[s.ID] = s
	}

	for i := range page.Elements {
		el := &page.Elements[i]
		if el.Type != document.ElementTypePhoto || el.Photo == nil || el.Photo.SlotID == "" {
			continue
		}
		slot, ok := byID[el.Photo.SlotID]
		if !ok {
			continue
		}
		el.X = slot.X
		el.Y = slot.Y
		el.Width = slot.Width
		el.Height = slot.Height
	}
}

package session

import (
	"fmt"
	"sort"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/geometry"
	"github.com/bindery/bindery/internal/layout"
	"github.com/bindery/bindery/internal/typeid"
)

// ReorderDirection names the four stacking moves.
type ReorderDirection string

const (
	ReorderFront    ReorderDirection = "front"
	ReorderBack     ReorderDirection = "back"
	ReorderForward  ReorderDirection = "forward"
	ReorderBackward ReorderDirection = "backward"
)

// ElementUpdate is a partial update; nil fields are left untouched.
// Stacking order is not updatable here, only through ReorderElement.
type ElementUpdate struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	Locked   *bool

	Photo   *document.PhotoProps
	Text    *document.TextProps
	Shape   *document.ShapeProps
	Sticker *document.StickerProps
}

// AddElement places an element on a page, minting a fresh id and stacking
// it above everything already there. Unknown page ids are ignored.
func (s *DocumentSession) AddElement(pageID string, el document.Element) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil {
		return ""
	}

	el.ID = typeid.NewElementID()
	el.ZIndex = page.MaxZIndex() + 1
	page.Elements = append(page.Elements, el)

	s.commit(fmt.Sprintf("Add %s", el.Type))
	return el.ID
}

// UpdateElement applies a partial update to one element. Unknown element
// ids are ignored.
func (s *DocumentSession) UpdateElement(elementID string, upd ElementUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.findElementPage(elementID)
	if page == nil {
		return
	}
	el := page.FindElement(elementID)

	if upd.X != nil {
		el.X = *upd.X
	}
	if upd.Y != nil {
		el.Y = *upd.Y
	}
	if upd.Width != nil {
		el.Width = *upd.Width
	}
	if upd.Height != nil {
		el.Height = *upd.Height
	}
	if upd.Rotation != nil {
		el.Rotation = *upd.Rotation
	}
	if upd.Locked != nil {
		el.Locked = *upd.Locked
	}
	if upd.Photo != nil && el.Type == document.ElementTypePhoto {
		p := *upd.Photo
		if p.Transform != nil {
			t := *p.Transform
			t.Zoom = geometry.Clamp(t.Zoom, geometry.MinZoom, geometry.MaxZoom)
			t.PanX = geometry.Clamp(t.PanX, -geometry.MaxPan, geometry.MaxPan)
			t.PanY = geometry.Clamp(t.PanY, -geometry.MaxPan, geometry.MaxPan)
			p.Transform = &t
		}
		el.Photo = &p
	}
	if upd.Text != nil && el.Type == document.ElementTypeText {
		t := *upd.Text
		el.Text = &t
	}
	if upd.Shape != nil && el.Type == document.ElementTypeShape {
		sh := *upd.Shape
		el.Shape = &sh
	}
	if upd.Sticker != nil && el.Type == document.ElementTypeSticker {
		st := *upd.Sticker
		el.Sticker = &st
	}

	s.commit(fmt.Sprintf("Update %s", el.Type))
}

// DeleteElements removes the given elements wherever they live and prunes
// them from the selection. Unknown ids are skipped; nothing commits when
// no element was removed.
func (s *DocumentSession) DeleteElements(elementIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return
	}

	doomed := make(map[string]bool, len(elementIDs))
	for _, id := range elementIDs {
		doomed[id] = true
	}

	removed := 0
	for i := range s.book.Pages {
		page := &s.book.Pages[i]
		kept := page.Elements[:0]
		for _, el := range page.Elements {
			if doomed[el.ID] {
				removed++
				continue
			}
			kept = append(kept, el)
		}
		page.Elements = kept
	}
	if removed == 0 {
		return
	}

	s.pruneSelection()
	s.commit(fmt.Sprintf("Delete %d element(s)", removed))
}

// DuplicateElement clones an element onto its own page, offset slightly,
// stacked on top, and selects the clone. Returns the new id, or "" when
// the source does not resolve.
func (s *DocumentSession) DuplicateElement(elementID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.findElementPage(elementID)
	if page == nil {
		return ""
	}

	clone := page.FindElement(elementID).Clone()
	clone.ID = typeid.NewElementID()
	clone.X += 5
	clone.Y += 5
	clone.ZIndex = page.MaxZIndex() + 1
	page.Elements = append(page.Elements, clone)

	s.selection = []string{clone.ID}
	s.commit(fmt.Sprintf("Duplicate %s", clone.Type))
	return clone.ID
}

// ReorderElement changes stacking order. Front and back jump past the
// extremes; forward and backward swap z with the nearest neighbor in that
// direction and no-op when the element is already at the edge.
func (s *DocumentSession) ReorderElement(elementID string, dir ReorderDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.findElementPage(elementID)
	if page == nil {
		return
	}
	el := page.FindElement(elementID)

	switch dir {
	case ReorderFront:
		el.ZIndex = page.MaxZIndex() + 1
	case ReorderBack:
		min := el.ZIndex
		for i := range page.Elements {
			if page.Elements[i].ZIndex < min {
				min = page.Elements[i].ZIndex
			}
		}
		el.ZIndex = min - 1
	case ReorderForward, ReorderBackward:
		ordered := make([]*document.Element, 0, len(page.Elements))
		for i := range page.Elements {
			ordered = append(ordered, &page.Elements[i])
		}
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ZIndex < ordered[j].ZIndex })

		pos := -1
		for i, e := range ordered {
			if e.ID == elementID {
				pos = i
				break
			}
		}

		var neighbor *document.Element
		if dir == ReorderForward && pos < len(ordered)-1 {
			neighbor = ordered[pos+1]
		} else if dir == ReorderBackward && pos > 0 {
			neighbor = ordered[pos-1]
		}
		if neighbor == nil {
			return
		}
		el.ZIndex, neighbor.ZIndex = neighbor.ZIndex, el.ZIndex
	default:
		return
	}

	s.commit("Reorder element")
}

// CopyElement places a deep copy of the element on the clipboard.
// Last copy wins. Unknown ids are ignored.
func (s *DocumentSession) CopyElement(elementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.findElementPage(elementID)
	if page == nil {
		return
	}
	clone := page.FindElement(elementID).Clone()
	s.clipboard = &clone
}

// PasteElement materializes the clipboard onto a page with a fresh id,
// slightly offset from the copied position unless an explicit position is
// given. Returns the new id, or "" when there is nothing to paste or the
// page does not resolve.
func (s *DocumentSession) PasteElement(pageID string, at *document.Point) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil || s.clipboard == nil {
		return ""
	}

	el := s.clipboard.Clone()
	el.ID = typeid.NewElementID()
	if at != nil {
		el.X, el.Y = at.X, at.Y
	} else {
		el.X += 5
		el.Y += 5
	}
	el.ZIndex = page.MaxZIndex() + 1
	page.Elements = append(page.Elements, el)

	s.selection = []string{el.ID}
	s.commit(fmt.Sprintf("Paste %s", el.Type))
	return el.ID
}

// AddPage inserts a blank content page after the given page, or at the end
// of the content run when afterPageID is empty or unknown. The new page is
// never placed after the back end-papers.
func (s *DocumentSession) AddPage(afterPageID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return ""
	}

	page := document.Page{
		ID:   typeid.NewPageID(),
		Type: document.PageTypeContent,
		Layout: document.Layout{
			ID:       "auto-1",
			Name:     "1 Photo Layout",
			Template: document.Template{PhotoSlots: layout.SlotsForCount(1)},
		},
		Background: &document.Background{Type: document.BackgroundColor, Color: "#ffffff"},
	}
	for _, slot := range page.Layout.Template.PhotoSlots {
		page.Elements = append(page.Elements, document.Element{
			ID:     typeid.NewElementID(),
			Type:   document.ElementTypePhoto,
			X:      slot.X,
			Y:      slot.Y,
			Width:  slot.Width,
			Height: slot.Height,
			ZIndex: slot.PaintOrder,
			Photo:  &document.PhotoProps{SlotID: slot.ID},
		})
	}

	at := s.lastContentIndex() + 1
	if afterPageID != "" {
		for i := range s.book.Pages {
			if s.book.Pages[i].ID == afterPageID && s.book.Pages[i].Type == document.PageTypeContent {
				at = i + 1
				break
			}
		}
	}

	s.book.Pages = append(s.book.Pages, document.Page{})
	copy(s.book.Pages[at+1:], s.book.Pages[at:])
	s.book.Pages[at] = page
	s.book.Renumber()

	s.commit("Add page")
	return page.ID
}

// RemovePage deletes a content page. The last remaining content page is
// kept; removal of cover or end-paper surfaces is refused. Editor focus
// moves to a neighbor when the focused page goes away.
func (s *DocumentSession) RemovePage(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return
	}

	at := -1
	contentCount := 0
	for i := range s.book.Pages {
		if s.book.Pages[i].Type == document.PageTypeContent {
			contentCount++
		}
		if s.book.Pages[i].ID == pageID {
			at = i
		}
	}
	if at == -1 || s.book.Pages[at].Type != document.PageTypeContent || contentCount <= 1 {
		return
	}

	s.book.Pages = append(s.book.Pages[:at], s.book.Pages[at+1:]...)
	s.book.Renumber()

	if s.currentPageID == pageID {
		if at >= len(s.book.Pages) {
			at = len(s.book.Pages) - 1
		}
		s.currentPageID = s.book.Pages[at].ID
	}

	s.pruneSelection()
	s.commit("Remove page")
}

// UpdatePageLayout swaps the page onto a new slot template, remapping
// existing photos slot for slot. Unknown page ids are ignored.
func (s *DocumentSession) UpdatePageLayout(pageID string, lay document.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil {
		return
	}

	layout.ApplyTemplateToPage(page, lay)
	s.pruneSelection()
	s.commit(fmt.Sprintf("Apply layout %s", lay.Name))
}

// UpdatePageBackground sets the page background. Unknown page ids are
// ignored.
func (s *DocumentSession) UpdatePageBackground(pageID string, bg *document.Background) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil {
		return
	}

	page.Background = bg
	s.commit("Change background")
}

// AddSlot grows the page's slot grid by one, up to the template maximum.
func (s *DocumentSession) AddSlot(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil {
		return
	}

	slots := layout.AddPhotoSlot(page.Layout.Template.PhotoSlots)
	if len(slots) == len(page.Layout.Template.PhotoSlots) {
		return
	}

	s.applySlots(page, slots)
	s.commit("Add photo slot")
}

// RemoveSlot shrinks the page's slot grid by one, never below one slot.
// When slotID names a slot, that slot's photo is the one dropped.
func (s *DocumentSession) RemoveSlot(pageID, slotID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil {
		return
	}

	slots := layout.RemovePhotoSlot(page.Layout.Template.PhotoSlots, slotID)
	if len(slots) == len(page.Layout.Template.PhotoSlots) {
		return
	}

	if slotID != "" {
		for i := range page.Elements {
			el := &page.Elements[i]
			if el.Type == document.ElementTypePhoto && el.Photo != nil && el.Photo.SlotID == slotID {
				page.Elements = append(page.Elements[:i], page.Elements[i+1:]...)
				break
			}
		}
	}

	s.applySlots(page, slots)
	s.pruneSelection()
	s.commit("Remove photo slot")
}

// ShuffleSlots permutes slot positions on the page and moves bound photos
// along with their slots.
func (s *DocumentSession) ShuffleSlots(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageByID(pageID)
	if page == nil || len(page.Layout.Template.PhotoSlots) < 2 {
		return
	}

	page.Layout.Template.PhotoSlots = layout.ShufflePhotoSlots(page.Layout.Template.PhotoSlots, s.rng)
	layout.RelocateToSlots(page)
	s.commit("Shuffle layout")
}

// Autofill fills empty photo slots across the book from the session pool.
func (s *DocumentSession) Autofill(opts layout.AutofillOptions) layout.AutofillStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return layout.AutofillStats{}
	}

	stats := layout.AutofillImages(s.book, s.photos, opts)
	if stats.SlotsFilled > 0 {
		s.commit(fmt.Sprintf("Autofill %d slot(s)", stats.SlotsFilled))
	}
	return stats
}

// UpdateSpineTitle sets the spine text.
func (s *DocumentSession) UpdateSpineTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return
	}
	s.book.SpineTitle = title
	s.commit("Update spine title")
}

// applySlots rebinds the page to a new slot list, regenerating the slot
// grid while keeping bound photos in document order. Callers hold the lock.
func (s *DocumentSession) applySlots(page *document.Page, slots []document.PhotoSlot) {
	layout.ApplyTemplateToPage(page, document.Layout{
		ID:       page.Layout.ID,
		Name:     page.Layout.Name,
		Template: document.Template{PhotoSlots: slots},
	})
}

// pageByID resolves a page id. Callers hold the lock.
func (s *DocumentSession) pageByID(pageID string) *document.Page {
	if s.book == nil {
		return nil
	}
	return s.book.FindPage(pageID)
}

// lastContentIndex returns the index of the last content page, or the
// cover index when none exist. Callers hold the lock.
func (s *DocumentSession) lastContentIndex() int {
	last := 0
	for i := range s.book.Pages {
		if s.book.Pages[i].Type == document.PageTypeContent {
			last = i
		}
	}
	return last
}

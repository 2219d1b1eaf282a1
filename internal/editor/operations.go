package editor

import (
	"fmt"

	"github.com/bindery/bindery/internal/layout"
	"github.com/bindery/bindery/internal/session"
)

// applyOperation translates one wire operation into a session call. The
// page type is the source of truth for editability; end-paper surfaces
// reject structural edits here before the session ever sees them.
func applyOperation(sess *session.DocumentSession, op Operation) error {
	switch op.Type {
	case OpElementAdd:
		if op.Element == nil {
			return fmt.Errorf("element.add: missing element")
		}
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		if err := op.Element.Validate(); err != nil {
			return fmt.Errorf("element.add: %w", err)
		}
		sess.AddElement(op.PageID, *op.Element)

	case OpElementUpdate:
		if op.Changes == nil {
			return fmt.Errorf("element.update: missing changes")
		}
		if err := requireElementEditable(sess, op.ElementID); err != nil {
			return err
		}
		sess.UpdateElement(op.ElementID, op.Changes.toUpdate())

	case OpElementDelete:
		ids := op.ElementIDs
		if len(ids) == 0 && op.ElementID != "" {
			ids = []string{op.ElementID}
		}
		for _, id := range ids {
			if err := requireElementEditable(sess, id); err != nil {
				return err
			}
		}
		sess.DeleteElements(ids...)

	case OpElementDuplicate:
		if err := requireElementEditable(sess, op.ElementID); err != nil {
			return err
		}
		sess.DuplicateElement(op.ElementID)

	case OpElementReorder:
		if err := requireElementEditable(sess, op.ElementID); err != nil {
			return err
		}
		sess.ReorderElement(op.ElementID, session.ReorderDirection(op.Direction))

	case OpElementCopy:
		sess.CopyElement(op.ElementID)

	case OpElementPaste:
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.PasteElement(op.PageID, op.Position)

	case OpPageAdd:
		sess.AddPage(op.AfterPageID)

	case OpPageRemove:
		sess.RemovePage(op.PageID)

	case OpPageFocus:
		sess.SetCurrentPage(op.PageID)

	case OpPageLayout:
		if op.Layout == nil {
			return fmt.Errorf("page.layout: missing layout")
		}
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.UpdatePageLayout(op.PageID, *op.Layout)

	case OpPageBackground:
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.UpdatePageBackground(op.PageID, op.Background)

	case OpSlotAdd:
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.AddSlot(op.PageID)

	case OpSlotRemove:
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.RemoveSlot(op.PageID, op.SlotID)

	case OpSlotShuffle:
		if err := requireEditable(sess, op.PageID); err != nil {
			return err
		}
		sess.ShuffleSlots(op.PageID)

	case OpBookAutofill:
		var req AutofillRequest
		if op.Autofill != nil {
			req = *op.Autofill
		}
		sess.Autofill(layout.AutofillOptions{
			SkipUsedImages: req.SkipUsedImages,
			TargetPageIDs:  req.TargetPageIDs,
		})

	case OpBookSpine:
		if op.Title == nil {
			return fmt.Errorf("book.spine: missing title")
		}
		sess.UpdateSpineTitle(*op.Title)

	case OpPhotoAdd:
		sess.AddPhotos(op.Photos...)

	case OpPhotoRemove:
		sess.DeletePhoto(op.PhotoID)

	case OpSelectionSet:
		sess.SelectElements(op.ElementIDs, op.Append)

	case OpSelectionClear:
		sess.ClearSelection()

	case OpHistoryUndo:
		sess.Undo()

	case OpHistoryRedo:
		sess.Redo()

	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}

	return nil
}

// requireEditable rejects structural edits on locked surfaces. Unknown
// page ids pass through; the session treats them as silent no-ops.
func requireEditable(sess *session.DocumentSession, pageID string) error {
	book := sess.Book()
	if book == nil {
		return fmt.Errorf("no document loaded")
	}
	page := book.FindPage(pageID)
	if page == nil {
		return nil
	}
	if !page.Editable() {
		return fmt.Errorf("page %s is not editable", pageID)
	}
	return nil
}

// requireElementEditable resolves an element to its page and applies the
// same gate.
func requireElementEditable(sess *session.DocumentSession, elementID string) error {
	book := sess.Book()
	if book == nil {
		return fmt.Errorf("no document loaded")
	}
	for i := range book.Pages {
		if book.Pages[i].FindElement(elementID) != nil {
			if !book.Pages[i].Editable() {
				return fmt.Errorf("page %s is not editable", book.Pages[i].ID)
			}
			return nil
		}
	}
	return nil
}

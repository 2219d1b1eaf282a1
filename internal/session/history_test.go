package session

import (
	"fmt"
	"testing"

	"github.com/bindery/bindery/internal/document"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	id := s.AddElement(pageID, textEl("fleeting"))
	if s.Book().FindPage(pageID).FindElement(id) == nil {
		t.Fatal("element missing after add")
	}

	if !s.Undo() {
		t.Fatal("undo reported failure")
	}
	if s.Book().FindPage(pageID).FindElement(id) != nil {
		t.Error("element still present after undo")
	}

	if !s.Redo() {
		t.Fatal("redo reported failure")
	}
	if s.Book().FindPage(pageID).FindElement(id) == nil {
		t.Error("element missing after redo")
	}
}

func TestUndoAtBaselineIsNoop(t *testing.T) {
	s := newTestSession(t)

	if s.Undo() {
		t.Error("undo succeeded with no prior snapshot")
	}
	if s.Book() == nil {
		t.Error("document vanished after no-op undo")
	}
}

func TestRedoAtTipIsNoop(t *testing.T) {
	s := newTestSession(t)
	if s.Redo() {
		t.Error("redo succeeded at history tip")
	}
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	s.AddElement(pageID, textEl("A"))
	s.AddElement(pageID, textEl("B"))
	s.Undo()

	// A new commit after undo discards the redo branch.
	s.AddElement(pageID, textEl("C"))
	if s.Redo() {
		t.Error("redo available after a diverging commit")
	}

	// The surviving history is generate, A, C.
	actions := s.HistoryActions()
	want := []string{"Generated photobook", "Add text", "Add text"}
	if len(actions) != len(want) {
		t.Fatalf("history = %v, want %d entries", actions, len(want))
	}
}

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	for i := 0; i < maxHistory+10; i++ {
		s.AddElement(pageID, textEl(fmt.Sprintf("el %d", i)))
	}

	actions := s.HistoryActions()
	if len(actions) != maxHistory {
		t.Fatalf("history length = %d, want %d", len(actions), maxHistory)
	}

	// The generation snapshot has been evicted.
	if actions[0] == "Generated photobook" {
		t.Error("oldest snapshot not evicted at capacity")
	}

	// Undo still walks the retained window all the way down.
	steps := 0
	for s.Undo() {
		steps++
	}
	if steps != maxHistory-1 {
		t.Errorf("undo steps = %d, want %d", steps, maxHistory-1)
	}
	if s.Book() == nil {
		t.Fatal("document lost at the bottom of history")
	}
}

func TestRestoredSnapshotIsIsolated(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	s.AddElement(pageID, textEl("anchor"))
	s.Undo()

	// Mutating the restored document must not corrupt the snapshot we
	// would redo into.
	got := s.Book()
	got.Pages[0].Elements = nil

	s.Redo()
	found := false
	for _, el := range s.Book().FindPage(pageID).Elements {
		if el.Type == document.ElementTypeText && el.Text.Content == "anchor" {
			found = true
		}
	}
	if !found {
		t.Error("redo target corrupted by external mutation")
	}
}

func TestUndoDropsStaleSelection(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	id := s.AddElement(pageID, textEl("selected"))
	s.SelectElements([]string{id}, false)

	s.Undo()
	for _, sel := range s.Selection() {
		if sel == id {
			t.Error("selection still references an element that no longer exists")
		}
	}
}

func TestHistorySurvivesPageRemoval(t *testing.T) {
	s := newTestSession(t)
	pageID := firstContentPage(t, s)

	s.SetCurrentPage(pageID)
	s.RemovePage(pageID)
	s.Undo()

	if s.Book().FindPage(pageID) == nil {
		t.Error("undo did not restore the removed page")
	}
}

package session

import (
	"time"

	"github.com/bindery/bindery/internal/document"
)

// History keeps at most this many snapshots; the oldest falls off first.
const maxHistory = 50

// Snapshot is a full deep copy of the document taken after a mutation.
// Restoring one never aliases live state.
type Snapshot struct {
	Book      *document.PhotoBook `json:"book"`
	Timestamp time.Time           `json:"timestamp"`
	Action    string              `json:"action"`
}

// commit records the current document under the given action label. Any
// redo tail beyond the cursor is discarded, then the history is trimmed
// from the front if it exceeds capacity.
func (s *DocumentSession) commit(action string) {
	if s.book == nil {
		return
	}
	s.book.Touch()

	s.history = s.history[:s.historyIndex+1]
	s.history = append(s.history, Snapshot{
		Book:      s.book.Clone(),
		Timestamp: time.Now(),
		Action:    action,
	})
	s.historyIndex++

	if len(s.history) > maxHistory {
		s.history = s.history[1:]
		s.historyIndex--
	}
}

// Undo steps the document back one snapshot. No-op at the start of history.
func (s *DocumentSession) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.historyIndex <= 0 {
		return false
	}
	s.historyIndex--
	s.restore(s.history[s.historyIndex])
	return true
}

// Redo steps the document forward one snapshot. No-op at the tip.
func (s *DocumentSession) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.historyIndex >= len(s.history)-1 {
		return false
	}
	s.historyIndex++
	s.restore(s.history[s.historyIndex])
	return true
}

// CanUndo reports whether a snapshot exists before the cursor.
func (s *DocumentSession) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyIndex > 0
}

// CanRedo reports whether a snapshot exists after the cursor.
func (s *DocumentSession) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyIndex < len(s.history)-1
}

// HistoryActions returns the action labels in order, oldest first.
func (s *DocumentSession) HistoryActions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actions := make([]string, len(s.history))
	for i, snap := range s.history {
		actions[i] = snap.Action
	}
	return actions
}

// restore swaps in a deep copy of the snapshot and drops any selection or
// current-page reference that no longer resolves.
func (s *DocumentSession) restore(snap Snapshot) {
	s.book = snap.Book.Clone()

	if s.book.FindPage(s.currentPageID) == nil && len(s.book.Pages) > 0 {
		s.currentPageID = s.book.Pages[0].ID
	}

	kept := s.selection[:0]
	for _, id := range s.selection {
		if s.findElementPage(id) != nil {
			kept = append(kept, id)
		}
	}
	s.selection = kept
}

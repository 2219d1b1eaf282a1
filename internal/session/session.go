// Package session holds the mutable editing state for one open photobook:
// the document, the photo pool, selection, clipboard, and bounded
// undo/redo history. All entry points take the session lock, so one
// session is safe to drive from multiple goroutines, matching one
// websocket client per open book.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/layout"
)

// DocumentSession is the unit of editing state. Zero value is not usable;
// construct with New.
type DocumentSession struct {
	mu sync.RWMutex

	book      *document.PhotoBook
	photos    []document.Photo
	selection []string
	clipboard *document.Element

	history      []Snapshot
	historyIndex int

	currentPageID string
	rng           *rand.Rand
}

// New creates an empty session with no document loaded.
func New() *DocumentSession {
	return &DocumentSession{
		historyIndex: -1,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load replaces the session document and resets history to a single
// baseline snapshot.
func (s *DocumentSession) Load(book *document.PhotoBook, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.book = book
	s.selection = nil
	s.clipboard = nil
	s.history = nil
	s.historyIndex = -1
	if len(book.Pages) > 0 {
		s.currentPageID = book.Pages[0].ID
	}
	s.commit(action)
}

// GenerateFromPhotos builds a fresh photobook from the given photos and
// makes it the session document. The photos become the session pool.
func (s *DocumentSession) GenerateFromPhotos(photos []document.Photo, cfg document.Config) *document.PhotoBook {
	book := layout.GeneratePhotoBook(photos, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.book = book
	s.photos = append([]document.Photo(nil), photos...)
	s.selection = nil
	s.clipboard = nil
	s.history = nil
	s.historyIndex = -1
	if len(book.Pages) > 0 {
		s.currentPageID = book.Pages[0].ID
	}
	s.commit("Generated photobook")
	return book
}

// Book returns a deep copy of the current document, or nil when none is
// loaded.
func (s *DocumentSession) Book() *document.PhotoBook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.book == nil {
		return nil
	}
	return s.book.Clone()
}

// Photos returns a copy of the session photo pool.
func (s *DocumentSession) Photos() []document.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]document.Photo(nil), s.photos...)
}

// AddPhotos appends uploaded photos to the pool. The document is untouched.
func (s *DocumentSession) AddPhotos(photos ...document.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, photos...)
}

// DeletePhoto removes a photo from the pool. Elements referencing it are
// left in place and become orphaned placeholders.
func (s *DocumentSession) DeletePhoto(photoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.photos {
		if s.photos[i].ID == photoID {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			return
		}
	}
}

// FindPhoto returns the pool photo with the given id, or nil.
func (s *DocumentSession) FindPhoto(photoID string) *document.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.photos {
		if s.photos[i].ID == photoID {
			p := s.photos[i]
			return &p
		}
	}
	return nil
}

// CurrentPageID returns the page the editor is focused on.
func (s *DocumentSession) CurrentPageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPageID
}

// SetCurrentPage moves editor focus. Unknown page ids are ignored.
func (s *DocumentSession) SetCurrentPage(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book != nil && s.book.FindPage(pageID) != nil {
		s.currentPageID = pageID
	}
}

// Selection returns the selected element ids in selection order.
func (s *DocumentSession) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// SelectElements replaces the selection, or unions into it when add is
// set. Ids that do not resolve to a live element are dropped; duplicates
// collapse.
func (s *DocumentSession) SelectElements(ids []string, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !add {
		s.selection = s.selection[:0]
	}

	have := make(map[string]bool, len(s.selection))
	for _, id := range s.selection {
		have[id] = true
	}
	for _, id := range ids {
		if have[id] || s.findElementPage(id) == nil {
			continue
		}
		s.selection = append(s.selection, id)
		have[id] = true
	}
}

// ClearSelection empties the selection.
func (s *DocumentSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection[:0]
}

// findElementPage returns the page holding the element, or nil. Callers
// hold the lock.
func (s *DocumentSession) findElementPage(elementID string) *document.Page {
	if s.book == nil {
		return nil
	}
	for i := range s.book.Pages {
		if s.book.Pages[i].FindElement(elementID) != nil {
			return &s.book.Pages[i]
		}
	}
	return nil
}

// pruneSelection drops ids that no longer resolve. Callers hold the lock.
func (s *DocumentSession) pruneSelection() {
	kept := s.selection[:0]
	for _, id := range s.selection {
		if s.findElementPage(id) != nil {
			kept = append(kept, id)
		}
	}
	s.selection = kept
}

// Package book exposes the photobook REST surface: listing, generation,
// export and import. Live editing happens over the websocket channel; this
// API covers everything outside an open editor.
package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/layout"
	"github.com/bindery/bindery/internal/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

type generateRequest struct {
	Photos []document.Photo `json:"photos"`
	Config *document.Config `json:"config,omitempty"`
}

// Generate builds a complete photobook from an ordered photo list and
// persists it.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Photos) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "photos are required"})
		return
	}

	cfg := document.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	book := layout.GeneratePhotoBook(req.Photos, cfg)
	if err := h.store.SaveBook(r.Context(), book); err != nil {
		slog.Error("save generated book failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["bookId"]

	book, err := h.store.LoadBook(r.Context(), bookID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks(r.Context())
	if err != nil {
		slog.Error("list books failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["bookId"]

	if err := h.store.DeleteBook(r.Context(), bookID); err != nil {
		handleStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Spreads returns the reader-facing pairing of pages.
func (h *Handler) Spreads(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["bookId"]

	book, err := h.store.LoadBook(r.Context(), bookID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, document.BuildSpreads(book))
}

// Export streams the document as a standalone JSON file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["bookId"]

	book, err := h.store.LoadBook(r.Context(), bookID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	data, err := document.ExportJSON(book)
	if err != nil {
		slog.Error("export book failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", bookID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import loads a previously exported document and persists it as a new
// snapshot. Malformed documents are rejected whole.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
		return
	}

	book, err := document.LoadJSON(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.SaveBook(r.Context(), book); err != nil {
		slog.Error("save imported book failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Layouts lists the available slot templates for the layout picker.
func (h *Handler) Layouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, layout.Presets())
}

func handleStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
		return
	}
	slog.Error("store error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

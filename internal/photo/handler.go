package photo

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/typeid"
)

const maxUploadSize = 50 << 20 // 50MB

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Handler serves photo upload and retrieval endpoints.
type Handler struct {
	dir      string
	pageSize document.PageSize
}

// NewHandler creates a photo handler that stores files in dir. Quality
// scoring is computed against the given page size.
func NewHandler(dir string, pageSize document.PageSize) *Handler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create photo dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, pageSize: pageSize}
}

// Upload handles POST /photos/upload (multipart form, one or more "file"
// fields). Dimensions are decoded server-side for JPEG and PNG; WebP and
// HEIC uploads must carry "width" and "height" form fields.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (max 50MB)", http.StatusBadRequest)
		return
	}

	form := r.MultipartForm
	if form == nil || len(form.File["file"]) == 0 {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}

	photos := make([]document.Photo, 0, len(form.File["file"]))
	for _, header := range form.File["file"] {
		photo, err := h.storeOne(header, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		photos = append(photos, photo)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(photos)
}

func (h *Handler) storeOne(header *multipart.FileHeader, r *http.Request) (document.Photo, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedTypes[contentType]
	if !ok {
		return document.Photo{}, fmt.Errorf("unsupported type %s (want JPEG, PNG, WebP or HEIC)", contentType)
	}

	file, err := header.Open()
	if err != nil {
		return document.Photo{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	width, height := 0, 0
	if ext == ".jpg" || ext == ".png" {
		cfg, _, err := image.DecodeConfig(file)
		if err != nil {
			return document.Photo{}, fmt.Errorf("invalid image: %w", err)
		}
		width, height = cfg.Width, cfg.Height
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return document.Photo{}, fmt.Errorf("rewind upload: %w", err)
		}
	} else {
		// No stdlib decoder; trust client-reported dimensions.
		width, _ = strconv.Atoi(r.FormValue("width"))
		height, _ = strconv.Atoi(r.FormValue("height"))
	}

	photoID := typeid.NewPhotoID()
	filename := photoID + ext
	path := filepath.Join(h.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return document.Photo{}, fmt.Errorf("create photo file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		os.Remove(path)
		return document.Photo{}, fmt.Errorf("write photo file: %w", err)
	}

	quality := document.CalculateQuality(width, height, h.pageSize)

	return document.Photo{
		ID:             photoID,
		URL:            fmt.Sprintf("/photos/%s", filename),
		Width:          width,
		Height:         height,
		FileSize:       size,
		FileName:       header.Filename,
		AddedAt:        time.Now(),
		QualityScore:   quality.Score,
		QualityWarning: quality.Warning,
		QualityMessage: quality.Message,
	}, nil
}

// Serve returns an http.Handler for stored photo files. Photo ids are
// unique, so files are immutable.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/photos/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete handles DELETE /photos/{photoId}, removing the stored file.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID := mux.Vars(r)["photoId"]
	if err := typeid.Validate(photoID, typeid.PrefixPhoto); err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	for _, ext := range allowedTypes {
		path := filepath.Join(h.dir, photoID+ext)
		if err := os.Remove(path); err == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "photo not found", http.StatusNotFound)
}

package photo

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/bindery/bindery/internal/document"
)

func pngUpload(t *testing.T, w, h int) (*bytes.Buffer, string) {
	t.Helper()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="test.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(img.Bytes())
	mw.Close()

	return &body, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	h := NewHandler(t.TempDir(), document.PageSizeA4)

	body, contentType := pngUpload(t, 64, 48)
	req := httptest.NewRequest(http.MethodPost, "/photos/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var photos []document.Photo
	if err := json.Unmarshal(rec.Body.Bytes(), &photos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(photos))
	}

	p := photos[0]
	if p.ID == "" {
		t.Error("photo has no id")
	}
	if p.Width != 64 || p.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", p.Width, p.Height)
	}
	if p.FileName != "test.png" {
		t.Errorf("file name = %q", p.FileName)
	}
	if !p.QualityWarning {
		t.Error("tiny upload did not trigger a quality warning")
	}
	if p.FileSize == 0 {
		t.Error("file size not recorded")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	h := NewHandler(t.TempDir(), document.PageSizeA4)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="movie.gif"`)
	header.Set("Content-Type", "image/gif")
	part, _ := mw.CreatePart(header)
	part.Write([]byte("GIF89a"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/photos/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	h := NewHandler(t.TempDir(), document.PageSizeA4)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("width", "100")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/photos/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(dir, document.PageSizeA4)

	body, contentType := pngUpload(t, 64, 48)
	req := httptest.NewRequest(http.MethodPost, "/photos/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}

	var photos []document.Photo
	if err := json.Unmarshal(rec.Body.Bytes(), &photos); err != nil {
		t.Fatal(err)
	}
	photoID := photos[0].ID

	r := mux.NewRouter()
	r.HandleFunc("/photos/{photoId}", h.Delete).Methods("DELETE")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/photos/"+photoID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, photoID+".png")); !os.IsNotExist(err) {
		t.Error("photo file still on disk after delete")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/photos/"+photoID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/photos/not-a-photo-id", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus id status = %d, want 400", rec.Code)
	}
}

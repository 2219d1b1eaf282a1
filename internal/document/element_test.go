package document

import "testing"

func TestElementValidate(t *testing.T) {
	tests := []struct {
		name    string
		el      Element
		wantErr bool
	}{
		{
			name: "photo with photo props",
			el:   Element{ID: "el_1", Type: ElementTypePhoto, Width: 10, Height: 10, Photo: &PhotoProps{}},
		},
		{
			name: "text with text props",
			el:   Element{ID: "el_2", Type: ElementTypeText, Width: 10, Height: 10, Text: &TextProps{Content: "hi"}},
		},
		{
			name:    "photo without payload",
			el:      Element{ID: "el_3", Type: ElementTypePhoto},
			wantErr: true,
		},
		{
			name:    "two payloads",
			el:      Element{ID: "el_4", Type: ElementTypePhoto, Photo: &PhotoProps{}, Text: &TextProps{}},
			wantErr: true,
		},
		{
			name:    "payload mismatching type",
			el:      Element{ID: "el_5", Type: ElementTypeText, Photo: &PhotoProps{}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			el:      Element{ID: "el_6", Type: "video"},
			wantErr: true,
		},
		{
			name:    "negative geometry",
			el:      Element{ID: "el_7", Type: ElementTypeShape, X: -1, Shape: &ShapeProps{ShapeType: "rect"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.el.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestElementCloneIsDeep(t *testing.T) {
	orig := Element{
		ID:   "el_orig",
		Type: ElementTypePhoto,
		Photo: &PhotoProps{
			PhotoID:   "photo_1",
			Transform: &Transform{Zoom: 1.5, PanX: 0.2},
			Frame:     &Frame{Enabled: true, Color: "#000", Width: 2, Style: FrameSolid},
		},
	}

	clone := orig.Clone()
	clone.Photo.PhotoID = "photo_2"
	clone.Photo.Transform.Zoom = 3
	clone.Photo.Frame.Color = "#fff"

	if orig.Photo.PhotoID != "photo_1" {
		t.Errorf("clone mutation leaked into original photo id: %q", orig.Photo.PhotoID)
	}
	if orig.Photo.Transform.Zoom != 1.5 {
		t.Errorf("clone mutation leaked into original transform: %v", orig.Photo.Transform.Zoom)
	}
	if orig.Photo.Frame.Color != "#000" {
		t.Errorf("clone mutation leaked into original frame: %q", orig.Photo.Frame.Color)
	}
}

func TestPhotoBookCloneIsDeep(t *testing.T) {
	book := &PhotoBook{
		ID: "book_1",
		Pages: []Page{
			{
				ID:   "page_1",
				Type: PageTypeContent,
				Elements: []Element{
					{ID: "el_1", Type: ElementTypePhoto, Photo: &PhotoProps{PhotoID: "photo_1"}},
				},
				Background: &Background{Type: BackgroundColor, Color: "#fff"},
			},
		},
	}

	clone := book.Clone()
	clone.Pages[0].Elements[0].Photo.PhotoID = "photo_2"
	clone.Pages[0].Background.Color = "#000"
	clone.Pages = append(clone.Pages, Page{ID: "page_2"})

	if got := book.Pages[0].Elements[0].Photo.PhotoID; got != "photo_1" {
		t.Errorf("element mutation leaked into original: %q", got)
	}
	if got := book.Pages[0].Background.Color; got != "#fff" {
		t.Errorf("background mutation leaked into original: %q", got)
	}
	if len(book.Pages) != 1 {
		t.Errorf("page append leaked into original: %d pages", len(book.Pages))
	}
}

func TestPageMaxZIndex(t *testing.T) {
	page := Page{Elements: []Element{
		{ID: "a", ZIndex: 3},
		{ID: "b", ZIndex: 7},
		{ID: "c", ZIndex: 1},
	}}
	if got := page.MaxZIndex(); got != 7 {
		t.Errorf("MaxZIndex() = %d, want 7", got)
	}

	empty := Page{}
	if got := empty.MaxZIndex(); got != 0 {
		t.Errorf("MaxZIndex() on empty page = %d, want 0", got)
	}
}

func TestPageEditable(t *testing.T) {
	tests := []struct {
		pageType PageType
		want     bool
	}{
		{PageTypeCover, true},
		{PageTypeContent, true},
		{PageTypeBackOfCover, false},
		{PageTypeBackCover, false},
	}
	for _, tt := range tests {
		p := Page{Type: tt.pageType}
		if got := p.Editable(); got != tt.want {
			t.Errorf("Editable() for %s = %v, want %v", tt.pageType, got, tt.want)
		}
	}
}

func TestOrphanedElements(t *testing.T) {
	book := &PhotoBook{
		ID: "book_1",
		Pages: []Page{
			{
				ID:   "page_1",
				Type: PageTypeContent,
				Elements: []Element{
					{ID: "el_live", Type: ElementTypePhoto, Photo: &PhotoProps{PhotoID: "photo_live"}},
					{ID: "el_gone", Type: ElementTypePhoto, Photo: &PhotoProps{PhotoID: "photo_gone"}},
					{ID: "el_empty", Type: ElementTypePhoto, Photo: &PhotoProps{}},
				},
			},
		},
	}

	got := book.OrphanedElements([]Photo{{ID: "photo_live"}})
	if len(got) != 1 || got[0] != "el_gone" {
		t.Errorf("OrphanedElements() = %v, want [el_gone]", got)
	}
}

func TestConfigPageDimensions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Dimensions
	}{
		{
			name: "A4 portrait",
			cfg:  Config{PageSize: PageSizeA4, Orientation: OrientationPortrait},
			want: Dimensions{Width: 2480, Height: 3508},
		},
		{
			name: "A4 landscape swaps",
			cfg:  Config{PageSize: PageSizeA4, Orientation: OrientationLandscape},
			want: Dimensions{Width: 3508, Height: 2480},
		},
		{
			name: "square",
			cfg:  Config{PageSize: PageSizeSquare},
			want: Dimensions{Width: 3000, Height: 3000},
		},
		{
			name: "explicit dimensions win",
			cfg:  Config{PageSize: PageSizeA4, Dimensions: &Dimensions{Width: 100, Height: 200}},
			want: Dimensions{Width: 100, Height: 200},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.PageDimensions(); got != tt.want {
				t.Errorf("PageDimensions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

package document

import "time"

// PhotoBook is the root document for one photobook project. It owns its
// pages positionally; page numbers are derived from slice order.
type PhotoBook struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Pages      []Page    `json:"pages"`
	Config     Config    `json:"config"`
	SpineTitle string    `json:"spineTitle,omitempty"`
}

type PageSize string

const (
	PageSizeA4     PageSize = "A4"
	PageSizeSquare PageSize = "Square"
)

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Config describes the physical shape of the book. Dimensions overrides the
// derived pixel size when set.
type Config struct {
	PageSize    PageSize    `json:"pageSize"`
	Orientation Orientation `json:"orientation"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	MaxPages    int         `json:"maxPages,omitempty"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultConfig matches the standard print product: A4 portrait at 300 DPI.
func DefaultConfig() Config {
	return Config{
		PageSize:    PageSizeA4,
		Orientation: OrientationPortrait,
		MaxPages:    20,
	}
}

// PageDimensions returns the pixel canvas for a page under this config.
func (c Config) PageDimensions() Dimensions {
	if c.Dimensions != nil {
		return *c.Dimensions
	}

	var d Dimensions
	switch c.PageSize {
	case PageSizeSquare:
		d = Dimensions{Width: 3000, Height: 3000}
	default: // A4 at 300 DPI
		d = Dimensions{Width: 2480, Height: 3508}
	}

	if c.Orientation == OrientationLandscape {
		d.Width, d.Height = d.Height, d.Width
	}
	return d
}

type PageType string

const (
	PageTypeCover       PageType = "cover"
	PageTypeContent     PageType = "content"
	PageTypeBackOfCover PageType = "back-of-cover"
	PageTypeBackCover   PageType = "back-cover"
)

// Page is one printable surface. PageNumber is recomputed by Renumber
// whenever pages are inserted or removed.
type Page struct {
	ID         string      `json:"id"`
	PageNumber int         `json:"pageNumber"`
	Type       PageType    `json:"type"`
	Elements   []Element   `json:"elements"`
	Layout     Layout      `json:"layout"`
	Background *Background `json:"background,omitempty"`
}

// Editable reports whether elements may be added to or dragged on this page.
// End-papers and the back-of-cover surface are fixed.
func (p *Page) Editable() bool {
	return p.Type == PageTypeCover || p.Type == PageTypeContent
}

// FindElement returns a pointer to the element with the given id, or nil.
func (p *Page) FindElement(id string) *Element {
	for i := range p.Elements {
		if p.Elements[i].ID == id {
			return &p.Elements[i]
		}
	}
	return nil
}

// MaxZIndex returns the highest zIndex on the page, or 0 when empty.
func (p *Page) MaxZIndex() int {
	max := 0
	for i := range p.Elements {
		if p.Elements[i].ZIndex > max {
			max = p.Elements[i].ZIndex
		}
	}
	return max
}

// Layout names the slot template currently attached to a page.
type Layout struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Template Template `json:"template"`
}

type Template struct {
	PhotoSlots []PhotoSlot `json:"photoSlots"`
}

// PhotoSlot is a percentage-space placeholder rectangle. PaintOrder fixes
// the z position of the element generated for the slot.
type PhotoSlot struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PaintOrder int     `json:"paintOrder"`
}

// Aspect returns width/height of the slot rectangle.
func (s PhotoSlot) Aspect() float64 {
	if s.Height == 0 {
		return 1
	}
	return s.Width / s.Height
}

type BackgroundType string

const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
)

type Background struct {
	Type       BackgroundType `json:"type"`
	Color      string         `json:"color,omitempty"`
	Gradient   *Gradient      `json:"gradient,omitempty"`
	PatternURL string         `json:"patternUrl,omitempty"`
}

type Gradient struct {
	Type   string   `json:"type"` // "linear" or "radial"
	Colors []string `json:"colors"`
	Angle  float64  `json:"angle,omitempty"`
}

// Photo is a source asset independent of any element. A photo may be
// referenced by zero or more photo elements; deleting it does not cascade.
type Photo struct {
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	ThumbnailURL   string    `json:"thumbnailUrl,omitempty"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	FileSize       int64     `json:"fileSize"`
	FileName       string    `json:"fileName"`
	AddedAt        time.Time `json:"addedAt"`
	QualityScore   int       `json:"qualityScore"`
	QualityWarning bool      `json:"qualityWarning"`
	QualityMessage string    `json:"qualityMessage,omitempty"`
}

// Aspect returns width/height of the source image.
func (p Photo) Aspect() float64 {
	if p.Height == 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// FindPage returns a pointer to the page with the given id, or nil.
func (b *PhotoBook) FindPage(id string) *Page {
	for i := range b.Pages {
		if b.Pages[i].ID == id {
			return &b.Pages[i]
		}
	}
	return nil
}

// Renumber recomputes every page number as index+1 in document order.
func (b *PhotoBook) Renumber() {
	for i := range b.Pages {
		b.Pages[i].PageNumber = i + 1
	}
}

// Touch bumps the update timestamp.
func (b *PhotoBook) Touch() {
	b.UpdatedAt = time.Now()
}

// UsedPhotoIDs returns the set of photo ids referenced by any photo element.
func (b *PhotoBook) UsedPhotoIDs() map[string]bool {
	used := make(map[string]bool)
	for i := range b.Pages {
		for j := range b.Pages[i].Elements {
			el := &b.Pages[i].Elements[j]
			if el.Type == ElementTypePhoto && el.Photo != nil && el.Photo.PhotoID != "" {
				used[el.Photo.PhotoID] = true
			}
		}
	}
	return used
}

// OrphanedElements returns ids of photo elements whose photo reference no
// longer resolves against the given pool. Orphans are kept as placeholders
// rather than cascaded on photo deletion.
func (b *PhotoBook) OrphanedElements(photos []Photo) []string {
	known := make(map[string]bool, len(photos))
	for _, p := range photos {
		known[p.ID] = true
	}

	var orphans []string
	for i := range b.Pages {
		for j := range b.Pages[i].Elements {
			el := &b.Pages[i].Elements[j]
			if el.Type == ElementTypePhoto && el.Photo != nil && el.Photo.PhotoID != "" && !known[el.Photo.PhotoID] {
				orphans = append(orphans, el.ID)
			}
		}
	}
	return orphans
}

// Clone returns a deep copy safe to hold in history while the original
// keeps mutating.
func (b *PhotoBook) Clone() *PhotoBook {
	out := *b
	out.Pages = make([]Page, len(b.Pages))
	for i := range b.Pages {
		out.Pages[i] = b.Pages[i].Clone()
	}
	if b.Config.Dimensions != nil {
		d := *b.Config.Dimensions
		out.Config.Dimensions = &d
	}
	return &out
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	out.Elements = make([]Element, len(p.Elements))
	for i := range p.Elements {
		out.Elements[i] = p.Elements[i].Clone()
	}
	out.Layout.Template.PhotoSlots = append([]PhotoSlot(nil), p.Layout.Template.PhotoSlots...)
	if p.Background != nil {
		bg := *p.Background
		if p.Background.Gradient != nil {
			g := *p.Background.Gradient
			g.Colors = append([]string(nil), p.Background.Gradient.Colors...)
			bg.Gradient = &g
		}
		out.Background = &bg
	}
	return out
}

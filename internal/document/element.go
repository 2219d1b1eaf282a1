package document

import "fmt"

type ElementType string

const (
	ElementTypePhoto   ElementType = "photo"
	ElementTypeText    ElementType = "text"
	ElementTypeShape   ElementType = "shape"
	ElementTypeSticker ElementType = "sticker"
)

// Element is the closed union of everything that can sit on a page.
// Position and size are percentages of the page (0-100), so a document
// renders at any target resolution. Exactly one variant field is non-nil
// and it must agree with Type; Validate enforces this on load.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	ZIndex   int         `json:"zIndex"`
	Locked   bool        `json:"locked,omitempty"`

	Photo   *PhotoProps   `json:"photo,omitempty"`
	Text    *TextProps    `json:"text,omitempty"`
	Shape   *ShapeProps   `json:"shape,omitempty"`
	Sticker *StickerProps `json:"sticker,omitempty"`
}

// PhotoProps carries the photo variant. An empty PhotoID marks a
// placeholder slot awaiting a photo.
type PhotoProps struct {
	PhotoID   string     `json:"photoId,omitempty"`
	SlotID    string     `json:"slotId,omitempty"`
	Transform *Transform `json:"transform,omitempty"`
	Frame     *Frame     `json:"frame,omitempty"`
	Effect    *Effect    `json:"effect,omitempty"`
}

// Placeholder reports whether the element has no photo bound.
func (p *PhotoProps) Placeholder() bool {
	return p.PhotoID == ""
}

// Transform narrows and shifts the cover-fit crop of a photo in its slot.
type Transform struct {
	Zoom     float64 `json:"zoom"` // 0.5 to 3.0
	Fit      string  `json:"fit"`  // "fill", "fit", "stretch", "cover"
	Rotation float64 `json:"rotation"`
	FlipH    bool    `json:"flipHorizontal"`
	FlipV    bool    `json:"flipVertical"`
	PanX     float64 `json:"panX"` // -0.5 to 0.5, 0 = centered
	PanY     float64 `json:"panY"`
}

// DefaultTransform is the identity photo transform.
func DefaultTransform() Transform {
	return Transform{Zoom: 1, Fit: "fill"}
}

type FrameStyle string

const (
	FrameSolid  FrameStyle = "solid"
	FrameDashed FrameStyle = "dashed"
	FrameDotted FrameStyle = "dotted"
	FrameDouble FrameStyle = "double"
)

type Frame struct {
	Enabled bool       `json:"enabled"`
	Color   string     `json:"color"`
	Width   float64    `json:"width"`
	Style   FrameStyle `json:"style"`
}

type Effect struct {
	Type      string  `json:"type"`      // "none", "sepia", "grayscale", "vintage", "warm", "cool", "vignette"
	Intensity float64 `json:"intensity"` // 0-100
}

type TextProps struct {
	Content         string  `json:"content"`
	FontFamily      string  `json:"fontFamily"`
	FontSize        float64 `json:"fontSize"`
	FontWeight      string  `json:"fontWeight"`
	FontStyle       string  `json:"fontStyle"`
	Align           string  `json:"textAlign"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	LineHeight      float64 `json:"lineHeight"`
	LetterSpacing   float64 `json:"letterSpacing,omitempty"`
}

type ShapeProps struct {
	Category     string  `json:"category,omitempty"` // "basic", "stars", "banners", "callouts"
	ShapeType    string  `json:"shapeType"`
	FillColor    string  `json:"fillColor,omitempty"`
	StrokeColor  string  `json:"strokeColor,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	Points       []Point `json:"points,omitempty"` // percentage-space polygon
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StickerProps struct {
	StickerID  string `json:"stickerId"`
	StickerURL string `json:"stickerUrl"`
	FlipH      bool   `json:"flipHorizontal,omitempty"`
	FlipV      bool   `json:"flipVertical,omitempty"`
}

// Validate checks that exactly the variant matching Type is present and
// geometry is non-negative.
func (e *Element) Validate() error {
	var want int
	switch e.Type {
	case ElementTypePhoto:
		if e.Photo == nil {
			return fmt.Errorf("element %s: type photo without photo props", e.ID)
		}
		want = 1
	case ElementTypeText:
		if e.Text == nil {
			return fmt.Errorf("element %s: type text without text props", e.ID)
		}
		want = 1
	case ElementTypeShape:
		if e.Shape == nil {
			return fmt.Errorf("element %s: type shape without shape props", e.ID)
		}
		want = 1
	case ElementTypeSticker:
		if e.Sticker == nil {
			return fmt.Errorf("element %s: type sticker without sticker props", e.ID)
		}
		want = 1
	default:
		return fmt.Errorf("element %s: unknown type %q", e.ID, e.Type)
	}

	got := 0
	if e.Photo != nil {
		got++
	}
	if e.Text != nil {
		got++
	}
	if e.Shape != nil {
		got++
	}
	if e.Sticker != nil {
		got++
	}
	if got != want {
		return fmt.Errorf("element %s: %d variant payloads for type %q", e.ID, got, e.Type)
	}

	if e.X < 0 || e.Y < 0 || e.Width < 0 || e.Height < 0 {
		return fmt.Errorf("element %s: negative geometry", e.ID)
	}
	return nil
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Photo != nil {
		p := *e.Photo
		if e.Photo.Transform != nil {
			t := *e.Photo.Transform
			p.Transform = &t
		}
		if e.Photo.Frame != nil {
			f := *e.Photo.Frame
			p.Frame = &f
		}
		if e.Photo.Effect != nil {
			fx := *e.Photo.Effect
			p.Effect = &fx
		}
		out.Photo = &p
	}
	if e.Text != nil {
		t := *e.Text
		out.Text = &t
	}
	if e.Shape != nil {
		s := *e.Shape
		s.Points = append([]Point(nil), e.Shape.Points...)
		out.Shape = &s
	}
	if e.Sticker != nil {
		s := *e.Sticker
		out.Sticker = &s
	}
	return out
}

// Package geometry converts between the document's percentage-space
// coordinates and pixel-space stage coordinates, and computes the
// cover-fit crop that fills a slot with a photo without distortion.
// Everything here is pure: same inputs, same outputs, no state.
package geometry

import "github.com/bindery/bindery/internal/document"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X > other.X+other.Width ||
		r.X+r.Width < other.X ||
		r.Y > other.Y+other.Height ||
		r.Y+r.Height < other.Y)
}

// Aspect returns width/height, or 1 for a degenerate rect.
func (r Rect) Aspect() float64 {
	if r.Height == 0 {
		return 1
	}
	return r.Width / r.Height
}

// FitScale returns the uniform scale that fits a page into a viewport,
// shrunk by paddingFactor to leave a margin around the page.
func FitScale(page document.Dimensions, viewport Size, paddingFactor float64) float64 {
	if page.Width == 0 || page.Height == 0 {
		return 1
	}
	scale := viewport.Width / page.Width
	if s := viewport.Height / page.Height; s < scale {
		scale = s
	}
	return scale * paddingFactor
}

// CenterOffset returns the stage offset that centers a scaled page in the
// viewport.
func CenterOffset(page document.Dimensions, scale float64, viewport Size) Point {
	return Point{
		X: (viewport.Width - page.Width*scale) / 2,
		Y: (viewport.Height - page.Height*scale) / 2,
	}
}

// PageToStage maps a percentage-space point on a page to viewport pixels.
func PageToStage(p Point, page document.Dimensions, scale float64, offset Point) Point {
	return Point{
		X: offset.X + p.X/100*page.Width*scale,
		Y: offset.Y + p.Y/100*page.Height*scale,
	}
}

// StageToPage is the inverse of PageToStage. Degenerate inputs map to the
// page origin rather than dividing by zero.
func StageToPage(p Point, page document.Dimensions, scale float64, offset Point) Point {
	if scale == 0 || page.Width == 0 || page.Height == 0 {
		return Point{}
	}
	return Point{
		X: (p.X - offset.X) / (page.Width * scale) * 100,
		Y: (p.Y - offset.Y) / (page.Height * scale) * 100,
	}
}

// ElementRect maps an element's percentage-space bounds to page pixels.
func ElementRect(el *document.Element, page document.Dimensions) Rect {
	return Rect{
		X:      el.X / 100 * page.Width,
		Y:      el.Y / 100 * page.Height,
		Width:  el.Width / 100 * page.Width,
		Height: el.Height / 100 * page.Height,
	}
}

// FlipTransform describes how the renderer mirrors an element while
// keeping its visual bounding box anchored: a negative scale plus an
// offset equal to the element's pixel extent on the flipped axis.
type FlipTransform struct {
	ScaleX  float64 `json:"scaleX"`
	ScaleY  float64 `json:"scaleY"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// FlipFor computes the mirror transform for an element of the given
// pixel size.
func FlipFor(flipH, flipV bool, width, height float64) FlipTransform {
	t := FlipTransform{ScaleX: 1, ScaleY: 1}
	if flipH {
		t.ScaleX = -1
		t.OffsetX = width
	}
	if flipV {
		t.ScaleY = -1
		t.OffsetY = height
	}
	return t
}

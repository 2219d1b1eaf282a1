package geometry

import (
	"math"
	"testing"

	"github.com/bindery/bindery/internal/document"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name     string
		page     document.Dimensions
		viewport Size
		padding  float64
		want     float64
	}{
		{
			name:     "width-limited",
			page:     document.Dimensions{Width: 1000, Height: 500},
			viewport: Size{Width: 500, Height: 500},
			padding:  1,
			want:     0.5,
		},
		{
			name:     "height-limited",
			page:     document.Dimensions{Width: 500, Height: 1000},
			viewport: Size{Width: 500, Height: 500},
			padding:  1,
			want:     0.5,
		},
		{
			name:     "padding shrinks the fit",
			page:     document.Dimensions{Width: 1000, Height: 1000},
			viewport: Size{Width: 1000, Height: 1000},
			padding:  0.9,
			want:     0.9,
		},
		{
			name:     "degenerate page falls back to identity",
			viewport: Size{Width: 500, Height: 500},
			padding:  0.9,
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitScale(tt.page, tt.viewport, tt.padding)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FitScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageStageRoundTrip(t *testing.T) {
	page := document.Dimensions{Width: 2480, Height: 3508}
	viewport := Size{Width: 1200, Height: 800}
	scale := FitScale(page, viewport, 0.9)
	offset := CenterOffset(page, scale, viewport)

	points := []Point{
		{X: 0, Y: 0},
		{X: 50, Y: 50},
		{X: 100, Y: 100},
		{X: 12.5, Y: 87.5},
	}
	for _, p := range points {
		stage := PageToStage(p, page, scale, offset)
		back := StageToPage(stage, page, scale, offset)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %+v came back as %+v", p, back)
		}
	}
}

func TestStageToPageDegenerate(t *testing.T) {
	got := StageToPage(Point{X: 100, Y: 100}, document.Dimensions{}, 0, Point{})
	if got != (Point{}) {
		t.Errorf("StageToPage with zero scale = %+v, want origin", got)
	}
}

func TestElementRect(t *testing.T) {
	el := &document.Element{X: 10, Y: 20, Width: 50, Height: 25}
	page := document.Dimensions{Width: 1000, Height: 2000}

	got := ElementRect(el, page)
	want := Rect{X: 100, Y: 400, Width: 500, Height: 500}
	if got != want {
		t.Errorf("ElementRect() = %+v, want %+v", got, want)
	}
}

func TestFlipFor(t *testing.T) {
	tests := []struct {
		name         string
		flipH, flipV bool
		want         FlipTransform
	}{
		{name: "no flip", want: FlipTransform{ScaleX: 1, ScaleY: 1}},
		{name: "horizontal", flipH: true, want: FlipTransform{ScaleX: -1, ScaleY: 1, OffsetX: 300}},
		{name: "vertical", flipV: true, want: FlipTransform{ScaleX: 1, ScaleY: -1, OffsetY: 200}},
		{name: "both", flipH: true, flipV: true, want: FlipTransform{ScaleX: -1, ScaleY: -1, OffsetX: 300, OffsetY: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlipFor(tt.flipH, tt.flipV, 300, 200); got != tt.want {
				t.Errorf("FlipFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{name: "overlapping", other: Rect{X: 20, Y: 20, Width: 20, Height: 20}, want: true},
		{name: "touching edge", other: Rect{X: 30, Y: 10, Width: 10, Height: 10}, want: true},
		{name: "disjoint", other: Rect{X: 50, Y: 50, Width: 5, Height: 5}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

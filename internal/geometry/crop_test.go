package geometry

import (
	"math"
	"testing"
)

func TestCoverFitCrop(t *testing.T) {
	tests := []struct {
		name  string
		image Size
		slot  Size
		zoom  float64
		panX  float64
		panY  float64
		want  Rect
	}{
		{
			name:  "wide image into square slot",
			image: Size{Width: 4000, Height: 2000},
			slot:  Size{Width: 500, Height: 500},
			zoom:  1,
			want:  Rect{X: 1000, Y: 0, Width: 2000, Height: 2000},
		},
		{
			name:  "tall image into square slot",
			image: Size{Width: 2000, Height: 4000},
			slot:  Size{Width: 500, Height: 500},
			zoom:  1,
			want:  Rect{X: 0, Y: 1000, Width: 2000, Height: 2000},
		},
		{
			name:  "matching aspect covers whole image",
			image: Size{Width: 3000, Height: 2000},
			slot:  Size{Width: 600, Height: 400},
			zoom:  1,
			want:  Rect{X: 0, Y: 0, Width: 3000, Height: 2000},
		},
		{
			name:  "zoom halves the crop and recenters",
			image: Size{Width: 2000, Height: 2000},
			slot:  Size{Width: 100, Height: 100},
			zoom:  2,
			want:  Rect{X: 500, Y: 500, Width: 1000, Height: 1000},
		},
		{
			name:  "pan to the far right edge",
			image: Size{Width: 4000, Height: 2000},
			slot:  Size{Width: 500, Height: 500},
			zoom:  1,
			panX:  0.5,
			want:  Rect{X: 2000, Y: 0, Width: 2000, Height: 2000},
		},
		{
			name:  "pan past the range clamps to the edge",
			image: Size{Width: 4000, Height: 2000},
			slot:  Size{Width: 500, Height: 500},
			zoom:  1,
			panX:  3,
			want:  Rect{X: 2000, Y: 0, Width: 2000, Height: 2000},
		},
		{
			name:  "zoom below range clamps to minimum",
			image: Size{Width: 2000, Height: 2000},
			slot:  Size{Width: 100, Height: 100},
			zoom:  0.01,
			want:  Rect{X: 0, Y: 0, Width: 4000, Height: 4000},
		},
		{
			name: "zero-size image yields empty crop",
			slot: Size{Width: 100, Height: 100},
			zoom: 1,
			want: Rect{},
		},
		{
			name:  "zero-size slot yields empty crop",
			image: Size{Width: 2000, Height: 2000},
			zoom:  1,
			want:  Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverFitCrop(tt.image, tt.slot, tt.zoom, tt.panX, tt.panY)
			if !rectsClose(got, tt.want) {
				t.Errorf("CoverFitCrop() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCoverFitCropZoomShrinksCrop(t *testing.T) {
	image := Size{Width: 3000, Height: 2000}
	slot := Size{Width: 400, Height: 300}

	prev := CoverFitCrop(image, slot, 1, 0, 0)
	for _, zoom := range []float64{1.5, 2, 2.5, 3} {
		got := CoverFitCrop(image, slot, zoom, 0, 0)
		if got.Width >= prev.Width || got.Height >= prev.Height {
			t.Errorf("zoom %.1f: crop %+v not smaller than previous %+v", zoom, got, prev)
		}
		prev = got
	}
}

func TestCoverFitCropStaysInsideImage(t *testing.T) {
	image := Size{Width: 4000, Height: 2000}
	slot := Size{Width: 500, Height: 500}

	for _, zoom := range []float64{0.5, 1, 2, 3} {
		for _, pan := range []float64{-0.5, -0.25, 0, 0.25, 0.5} {
			got := CoverFitCrop(image, slot, zoom, pan, pan)
			if got.X < 0 || got.Y < 0 {
				t.Errorf("zoom %.1f pan %.2f: negative origin %+v", zoom, pan, got)
			}
			if zoom >= 1 && (got.X+got.Width > image.Width+1e-9 || got.Y+got.Height > image.Height+1e-9) {
				t.Errorf("zoom %.1f pan %.2f: crop %+v exceeds image", zoom, pan, got)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{v: 5, min: 0, max: 10, want: 5},
		{v: -1, min: 0, max: 10, want: 0},
		{v: 11, min: 0, max: 10, want: 10},
		{v: 0, min: 0, max: 0, want: 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func rectsClose(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps &&
		math.Abs(a.Height-b.Height) < eps
}

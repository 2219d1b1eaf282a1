package geometry

const (
	MinZoom = 0.5
	MaxZoom = 3.0
	MaxPan  = 0.5
)

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// CoverFitCrop computes the source-image crop rectangle that fills a slot
// of the given size without distortion. Out-of-range zoom and pan inputs
// are clamped at the boundary; the crop origin never leaves the image.
//
// The base crop at zoom=1 is the largest centered rectangle matching the
// slot's aspect ratio. Zoom divides both crop dimensions, so higher zoom
// samples a smaller region and looks zoomed in. Pan shifts the crop
// origin within the per-axis slack (image extent minus crop extent),
// with pan=0 centered.
func CoverFitCrop(image Size, slot Size, zoom, panX, panY float64) Rect {
	if image.Width <= 0 || image.Height <= 0 || slot.Width <= 0 || slot.Height <= 0 {
		return Rect{}
	}

	zoom = Clamp(zoom, MinZoom, MaxZoom)
	panX = Clamp(panX, -MaxPan, MaxPan)
	panY = Clamp(panY, -MaxPan, MaxPan)

	slotAspect := slot.Width / slot.Height
	imageAspect := image.Width / image.Height

	var cropW, cropH float64
	if imageAspect > slotAspect {
		cropH = image.Height
		cropW = image.Height * slotAspect
	} else {
		cropW = image.Width
		cropH = image.Width / slotAspect
	}

	cropW /= zoom
	cropH /= zoom

	slackX := image.Width - cropW
	if slackX < 0 {
		slackX = 0
	}
	slackY := image.Height - cropH
	if slackY < 0 {
		slackY = 0
	}

	return Rect{
		X:      (0.5 + panX) * slackX,
		Y:      (0.5 + panY) * slackY,
		Width:  cropW,
		Height: cropH,
	}
}

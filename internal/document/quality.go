package document

import "math"

// Print quality is judged against a typical slot rather than a full page:
// an average book runs about three photos per page, so a photo only needs
// to cover a third of the page at print DPI.
const (
	printDPI         = 150
	avgPhotosPerPage = 3
	qualityThreshold = 40
)

const qualityWarningMessage = "Poor photo quality. We recommend changing the photo to one with higher resolution, otherwise the print might be blurred."

// QualityMetrics is the derived print-quality verdict for a photo,
// computed once at ingestion.
type QualityMetrics struct {
	Score   int    `json:"score"` // 0-100
	Warning bool   `json:"warning"`
	Message string `json:"message,omitempty"`
}

// CalculateQuality scores a photo's native resolution against the print
// target for the configured page size.
func CalculateQuality(width, height int, size PageSize) QualityMetrics {
	var pageInchesW, pageInchesH float64
	switch size {
	case PageSizeSquare:
		pageInchesW, pageInchesH = 10, 10
	default: // A4
		pageInchesW, pageInchesH = 8.27, 11.69
	}

	fullPagePixels := pageInchesW * printDPI * pageInchesH * printDPI
	requiredPixels := fullPagePixels / avgPhotosPerPage
	actualPixels := float64(width) * float64(height)

	score := math.Min(100, actualPixels/requiredPixels*100)
	warning := score < qualityThreshold

	m := QualityMetrics{Score: int(math.Round(score)), Warning: warning}
	if warning {
		m.Message = qualityWarningMessage
	}
	return m
}

package document

import "fmt"

// Spread is a derived left/right pairing of pages for two-page viewing.
// It is recomputed on demand and never persisted.
type Spread struct {
	ID     string `json:"id"`
	Left   *Page  `json:"leftPage"`
	Right  *Page  `json:"rightPage"`
	Number int    `json:"spreadNumber"`
	Label  string `json:"label"`
}

// BuildSpreads pairs the book's pages for spread view: the back cover
// wraps around to sit left of the front cover, then interior pages pair
// in document order.
func BuildSpreads(b *PhotoBook) []Spread {
	var spreads []Spread

	var front, back *Page
	for i := range b.Pages {
		switch b.Pages[i].Type {
		case PageTypeCover:
			front = &b.Pages[i]
		case PageTypeBackCover:
			back = &b.Pages[i]
		}
	}

	if front != nil && back != nil {
		spreads = append(spreads, Spread{
			ID:     "spread-0",
			Left:   back,
			Right:  front,
			Number: 0,
			Label:  "Cover",
		})
	}

	var interior []*Page
	for i := range b.Pages {
		t := b.Pages[i].Type
		if t == PageTypeContent || t == PageTypeBackOfCover {
			interior = append(interior, &b.Pages[i])
		}
	}

	for i := 0; i < len(interior); i += 2 {
		left := interior[i]
		var right *Page
		if i+1 < len(interior) {
			right = interior[i+1]
		}

		label := fmt.Sprintf("Page %d", left.PageNumber)
		if right != nil {
			label = fmt.Sprintf("Page %d-%d", left.PageNumber, right.PageNumber)
		}

		spreads = append(spreads, Spread{
			ID:     fmt.Sprintf("spread-%d", len(spreads)),
			Left:   left,
			Right:  right,
			Number: len(spreads),
			Label:  label,
		})
	}

	return spreads
}

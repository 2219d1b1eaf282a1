package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingID    = errors.New("document missing id")
	ErrMissingPages = errors.New("document missing pages")
)

// ExportJSON serializes the full document for saving a project.
func ExportJSON(b *PhotoBook) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal photobook: %w", err)
	}
	return data, nil
}

// LoadJSON parses a saved document. It fails fast on malformed input and
// never returns a partially applied document: required fields are checked
// and every element must carry a consistent variant payload.
func LoadJSON(data []byte) (*PhotoBook, error) {
	var b PhotoBook
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse photobook: %w", err)
	}
	if b.ID == "" {
		return nil, ErrMissingID
	}
	if b.Pages == nil {
		return nil, ErrMissingPages
	}
	for i := range b.Pages {
		for j := range b.Pages[i].Elements {
			if err := b.Pages[i].Elements[j].Validate(); err != nil {
				return nil, fmt.Errorf("page %d: %w", i+1, err)
			}
		}
	}
	b.Renumber()
	return &b, nil
}

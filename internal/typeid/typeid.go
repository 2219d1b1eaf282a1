package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixBook     = "book"
	PrefixPage     = "page"
	PrefixElement  = "el"
	PrefixPhoto    = "photo"
	PrefixSlot     = "slot"
	PrefixLayout   = "layout"
	PrefixSnapshot = "snap"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewBookID() string     { return New(PrefixBook) }
func NewPageID() string     { return New(PrefixPage) }
func NewElementID() string  { return New(PrefixElement) }
func NewPhotoID() string    { return New(PrefixPhoto) }
func NewSlotID() string     { return New(PrefixSlot) }
func NewLayoutID() string   { return New(PrefixLayout) }
func NewSnapshotID() string { return New(PrefixSnapshot) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

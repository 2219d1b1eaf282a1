// Package layout builds photobook documents from photo sets and manages
// the slot templates that position photo elements on a page: applying a
// template to an existing page, growing/shrinking/shuffling its slots,
// and autofilling empty slots from the photo pool.
package layout

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/typeid"
)

// Slot counts per page are bounded: at least one slot, at most nine.
const (
	MinSlots = 1
	MaxSlots = 9
)

//go:embed templates.yaml
var templatesYAML []byte

type slotRect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type presetSpec struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Slots    []slotRect `yaml:"slots"`
}

type catalog struct {
	Partitions map[int][]slotRect `yaml:"partitions"`
	Presets    []presetSpec       `yaml:"presets"`
}

var (
	catalogOnce sync.Once
	catalogData catalog
	catalogErr  error
)

func loadCatalog() (catalog, error) {
	catalogOnce.Do(func() {
		catalogErr = yaml.Unmarshal(templatesYAML, &catalogData)
	})
	return catalogData, catalogErr
}

// SlotsForCount returns a fresh slot partition for n photos, with new slot
// ids and paint order following partition order. Counts outside [1,9] are
// clamped to the boundary.
func SlotsForCount(n int) []document.PhotoSlot {
	if n < MinSlots {
		n = MinSlots
	}
	if n > MaxSlots {
		n = MaxSlots
	}

	cat, err := loadCatalog()
	if err != nil {
		// The embedded catalog is part of the binary; failing to parse it
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("layout: parse embedded templates: %v", err))
	}

	rects := cat.Partitions[n]
	slots := make([]document.PhotoSlot, len(rects))
	for i, r := range rects {
		slots[i] = document.PhotoSlot{
			ID:         typeid.NewSlotID(),
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
			PaintOrder: i,
		}
	}
	return slots
}

// Preset is a named layout offered by the picker.
type Preset struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Template document.Template `json:"template"`
}

// Presets returns the named layout catalog. Slot ids are freshly minted on
// every call so two pages never share slot identities.
func Presets() []Preset {
	cat, err := loadCatalog()
	if err != nil {
		panic(fmt.Sprintf("layout: parse embedded templates: %v", err))
	}

	out := make([]Preset, len(cat.Presets))
	for i, p := range cat.Presets {
		slots := make([]document.PhotoSlot, len(p.Slots))
		for j, r := range p.Slots {
			slots[j] = document.PhotoSlot{
				ID:         typeid.NewSlotID(),
				X:          r.X,
				Y:          r.Y,
				Width:      r.Width,
				Height:     r.Height,
				PaintOrder: j,
			}
		}
		out[i] = Preset{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Template: document.Template{PhotoSlots: slots},
		}
	}
	return out
}

// PresetByID looks up a named layout, or returns false.
func PresetByID(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

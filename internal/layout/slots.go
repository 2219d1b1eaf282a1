package layout

import (
	"math/rand"

	"github.com/bindery/bindery/internal/document"
)

// AddPhotoSlot grows a page's slot partition by one, redistributing into
// the next canonical partition. At the nine-slot bound the input is
// returned unchanged.
func AddPhotoSlot(slots []document.PhotoSlot) []document.PhotoSlot {
	if len(slots) >= MaxSlots {
		return slots
	}
	return SlotsForCount(len(slots) + 1)
}

// RemovePhotoSlot shrinks the partition by one. When slotID is empty the
// last slot goes; at the single-slot bound the input is returned
// unchanged. Like AddPhotoSlot, the survivors are redistributed into the
// canonical partition for the new count.
func RemovePhotoSlot(slots []document.PhotoSlot, slotID string) []document.PhotoSlot {
	if len(slots) <= MinSlots {
		return slots
	}

	remaining := len(slots) - 1
	if slotID != "" {
		found := false
		for _, s := range slots {
			if s.ID == slotID {
				found = true
				break
			}
		}
		if !found {
			return slots
		}
	}
	return SlotsForCount(remaining)
}

// ShufflePhotoSlots permutes slot positions while preserving each slot's
// identity and size, so photo-to-slot bindings visually relocate rather
// than reassign.
func ShufflePhotoSlots(slots []document.PhotoSlot, rng *rand.Rand) []document.PhotoSlot {
	out := append([]document.PhotoSlot(nil), slots...)

	positions := make([]document.Point, len(out))
	for i, s := range out {
		positions[i] = document.Point{X: s.X, Y: s.Y}
	}
	for i := len(positions) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		positions[i], positions[j] = positions[j], positions[i]
	}

	for i := range out {
		out[i].X = positions[i].X
		out[i].Y = positions[i].Y
	}
	return out
}

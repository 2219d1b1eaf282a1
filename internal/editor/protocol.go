package editor

import (
	"encoding/json"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/session"
)

type Message struct {
	Type     string          `json:"type"`
	BookID   string          `json:"bookId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Full document push after any accepted mutation.
	TypeDocSync = "doc.sync"

	TypeOpSubmit = "op.submit"
	TypeOpAck    = "op.ack"
	TypeOpNack   = "op.nack"
)

// Operation names accepted inside op.submit.
const (
	OpElementAdd       = "element.add"
	OpElementUpdate    = "element.update"
	OpElementDelete    = "element.delete"
	OpElementDuplicate = "element.duplicate"
	OpElementReorder   = "element.reorder"
	OpElementCopy      = "element.copy"
	OpElementPaste     = "element.paste"

	OpPageAdd        = "page.add"
	OpPageRemove     = "page.remove"
	OpPageFocus      = "page.focus"
	OpPageLayout     = "page.layout"
	OpPageBackground = "page.background"
	OpSlotAdd        = "page.slot.add"
	OpSlotRemove     = "page.slot.remove"
	OpSlotShuffle    = "page.slot.shuffle"

	OpBookAutofill = "book.autofill"
	OpBookSpine    = "book.spine"

	// Pool ops keep the session's photo set in step with uploads.
	OpPhotoAdd    = "photo.add"
	OpPhotoRemove = "photo.remove"

	OpSelectionSet   = "selection.set"
	OpSelectionClear = "selection.clear"

	OpHistoryUndo = "history.undo"
	OpHistoryRedo = "history.redo"
)

// Operation is one submitted mutation. Only the fields relevant to its
// Type are set.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	ClientSeq int64  `json:"clientSeq"`

	PageID      string `json:"pageId,omitempty"`
	AfterPageID string `json:"afterPageId,omitempty"`
	ElementID   string `json:"elementId,omitempty"`
	SlotID      string `json:"slotId,omitempty"`

	Element    *document.Element      `json:"element,omitempty"`
	Changes    *ElementChanges        `json:"changes,omitempty"`
	Direction  string                 `json:"direction,omitempty"`
	Position   *document.Point        `json:"position,omitempty"`
	Layout     *document.Layout       `json:"layout,omitempty"`
	Background *document.Background   `json:"background,omitempty"`
	ElementIDs []string               `json:"elementIds,omitempty"`
	Append     bool                   `json:"append,omitempty"`
	Title      *string                `json:"title,omitempty"`
	Autofill   *AutofillRequest       `json:"autofill,omitempty"`
	Photos     []document.Photo       `json:"photos,omitempty"`
	PhotoID    string                 `json:"photoId,omitempty"`
}

// ElementChanges mirrors session.ElementUpdate on the wire; absent fields
// stay untouched. Stacking order moves only through element.reorder.
type ElementChanges struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Locked   *bool    `json:"locked,omitempty"`

	Photo   *document.PhotoProps   `json:"photo,omitempty"`
	Text    *document.TextProps    `json:"text,omitempty"`
	Shape   *document.ShapeProps   `json:"shape,omitempty"`
	Sticker *document.StickerProps `json:"sticker,omitempty"`
}

func (c *ElementChanges) toUpdate() session.ElementUpdate {
	return session.ElementUpdate{
		X:        c.X,
		Y:        c.Y,
		Width:    c.Width,
		Height:   c.Height,
		Rotation: c.Rotation,
		Locked:   c.Locked,
		Photo:    c.Photo,
		Text:     c.Text,
		Shape:    c.Shape,
		Sticker:  c.Sticker,
	}
}

type AutofillRequest struct {
	SkipUsedImages bool     `json:"skipUsedImages"`
	TargetPageIDs  []string `json:"targetPageIds,omitempty"`
}

type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

type OperationAckPayload struct {
	OperationID string `json:"operationId"`
	ServerSeq   int64  `json:"serverSeq"`
}

type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	BookID   string `json:"bookId"`
}

// DocSyncPayload carries the full document plus the editing context the
// client needs to render panels.
type DocSyncPayload struct {
	Book      *document.PhotoBook `json:"book"`
	Selection []string            `json:"selection"`
	CanUndo   bool                `json:"canUndo"`
	CanRedo   bool                `json:"canRedo"`
	ServerSeq int64               `json:"serverSeq"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/session"
)

// LoadFunc fetches the latest persisted document for a book.
type LoadFunc func(ctx context.Context, bookID string) (*document.PhotoBook, error)

// SaveFunc persists the document.
type SaveFunc func(ctx context.Context, book *document.PhotoBook) error

// Room is one open book: its editing session plus the connected clients.
type Room struct {
	bookID    string
	session   *session.DocumentSession
	clients   map[string]*Client // clientID -> client
	serverSeq int64
}

func newRoom(bookID string) *Room {
	return &Room{
		bookID:  bookID,
		session: session.New(),
		clients: make(map[string]*Client),
	}
}

// Hub routes editing traffic. A room is created on the first connection
// for a book, loads the document through the loader, and is saved and
// dropped when its last client leaves.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // bookID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	load LoadFunc
	save SaveFunc
}

func NewHub(load LoadFunc, save SaveFunc) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		load:       load,
		save:       save,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop saves every open room and shuts the hub down.
func (h *Hub) Stop(ctx context.Context) {
	close(h.done)

	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.rooms = make(map[string]*Room)
	h.mu.Unlock()

	for _, room := range rooms {
		h.saveRoom(ctx, room)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Session returns the live session for a book, or nil when no room is
// open. Used by the upload handler to push photos into an open editor.
func (h *Hub) Session(bookID string) *session.DocumentSession {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[bookID]
	if !ok {
		return nil
	}
	return room.session
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BookID]
	if !ok {
		room = newRoom(client.BookID)
		h.rooms[client.BookID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	if !ok && h.load != nil {
		book, err := h.load(context.Background(), client.BookID)
		if err != nil {
			slog.Error("load book", "error", err, "book", client.BookID)
		} else if book != nil {
			room.session.Load(book, "Opened photobook")
		}
	}

	welcome, _ := json.Marshal(WelcomePayload{ClientID: client.ClientID, BookID: client.BookID})
	client.Send(&Message{Type: TypeWelcome, BookID: client.BookID, Payload: welcome})

	h.syncRoom(room)
	slog.Info("client joined", "client", client.ClientID, "book", client.BookID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BookID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.BookID)
	}
	h.mu.Unlock()

	if empty {
		h.saveRoom(context.Background(), room)
	}

	slog.Info("client left", "client", client.ClientID, "book", client.BookID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var payload OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(sender, fmt.Sprintf("invalid op payload: %v", err))
		return
	}
	op := payload.Operation

	h.mu.RLock()
	room, ok := h.rooms[sender.BookID]
	h.mu.RUnlock()
	if !ok {
		h.sendError(sender, "no open session")
		return
	}

	if err := applyOperation(room.session, op); err != nil {
		nack, _ := json.Marshal(OperationNackPayload{OperationID: op.ID, Reason: err.Error()})
		sender.Send(&Message{Type: TypeOpNack, BookID: sender.BookID, Payload: nack})
		return
	}

	h.mu.Lock()
	room.serverSeq++
	seq := room.serverSeq
	h.mu.Unlock()

	ack, _ := json.Marshal(OperationAckPayload{OperationID: op.ID, ServerSeq: seq})
	sender.Send(&Message{Type: TypeOpAck, BookID: sender.BookID, Seq: seq, Payload: ack})

	h.syncRoom(room)
}

// syncRoom pushes the full document state to every client in the room.
func (h *Hub) syncRoom(room *Room) {
	payload, err := json.Marshal(DocSyncPayload{
		Book:      room.session.Book(),
		Selection: room.session.Selection(),
		CanUndo:   room.session.CanUndo(),
		CanRedo:   room.session.CanRedo(),
		ServerSeq: room.serverSeq,
	})
	if err != nil {
		slog.Error("marshal doc sync", "error", err)
		return
	}
	msg := &Message{Type: TypeDocSync, BookID: room.bookID, Payload: payload}

	h.mu.RLock()
	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) saveRoom(ctx context.Context, room *Room) {
	if h.save == nil {
		return
	}
	book := room.session.Book()
	if book == nil {
		return
	}
	if err := h.save(ctx, book); err != nil {
		slog.Error("save book", "error", err, "book", room.bookID)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	payload, _ := json.Marshal(ErrorPayload{Message: message})
	client.Send(&Message{Type: TypeError, BookID: client.BookID, Payload: payload})
}

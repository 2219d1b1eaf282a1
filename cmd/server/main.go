package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/bindery/bindery/internal/book"
	"github.com/bindery/bindery/internal/config"
	"github.com/bindery/bindery/internal/document"
	"github.com/bindery/bindery/internal/editor"
	mw "github.com/bindery/bindery/internal/middleware"
	"github.com/bindery/bindery/internal/photo"
	"github.com/bindery/bindery/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	hub := editor.NewHub(
		func(ctx context.Context, bookID string) (*document.PhotoBook, error) {
			return st.LoadBook(ctx, bookID)
		},
		func(ctx context.Context, b *document.PhotoBook) error {
			return st.SaveBook(ctx, b)
		},
	)
	go hub.Run()

	photoHandler := photo.NewHandler(cfg.PhotoDir, document.PageSize(cfg.PageSize))
	bookHandler := book.NewHandler(st)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/photos/upload", photoHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/photos/{photoId}", photoHandler.Delete).Methods("DELETE")
	r.PathPrefix("/photos/").Handler(photoHandler.Serve()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/books", bookHandler.List).Methods("GET")
	api.HandleFunc("/books/generate", bookHandler.Generate).Methods("POST")
	api.HandleFunc("/books/import", bookHandler.Import).Methods("POST")
	api.HandleFunc("/books/{bookId}", bookHandler.Get).Methods("GET")
	api.HandleFunc("/books/{bookId}", bookHandler.Delete).Methods("DELETE")
	api.HandleFunc("/books/{bookId}/spreads", bookHandler.Spreads).Methods("GET")
	api.HandleFunc("/books/{bookId}/export", bookHandler.Export).Methods("GET")
	api.HandleFunc("/layouts", bookHandler.Layouts).Methods("GET")

	r.HandleFunc("/ws/book/{bookId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all open books
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
		hub.Stop(saveCtx)
		saveCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *editor.Hub, origins []string) {
	bookID := mux.Vars(r)["bookId"]

	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		// AcceptOptions wants host patterns, not full origins
		patterns = append(patterns, trimScheme(o))
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: patterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := editor.NewClient(hub, conn, bookID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func trimScheme(origin string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if len(origin) > len(prefix) && origin[:len(prefix)] == prefix {
			return origin[len(prefix):]
		}
	}
	return origin
}

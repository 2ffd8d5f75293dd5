// Package server serves the praise page, its JSON API and the live-update
// websocket over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/internal/session"
	"github.com/grovetools/praise/pkg/workers"
)

// DefaultCookieName carries the session ID.
const DefaultCookieName = "praise_session"

// WorkerSource enumerates the workers for one render.
type WorkerSource func() ([]workers.Worker, error)

// Options controls the HTTP surface.
type Options struct {
	Title        string
	CookieName   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// InlineImages embeds worker images in the page as data URLs.
	InlineImages bool
}

// Server manages the praise HTTP server.
type Server struct {
	logger   *logrus.Entry
	mu       sync.Mutex
	server   *http.Server
	closed   bool
	store    *session.Store
	source   WorkerSource
	opts     Options
	upgrader websocket.Upgrader
}

// New creates a new Server instance.
func New(logger *logrus.Entry, store *session.Store, source WorkerSource, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &Server{
		logger: logger,
		store:  store,
		source: source,
		opts:   opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the routed handler, accepting HTTP/2 without TLS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /click/{index}", s.handleClick)
	mux.HandleFunc("POST /another", s.handleAnother)
	mux.HandleFunc("GET /workers/{file}", s.handleImage)

	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/click/{index}", s.handleAPIClick)
	mux.HandleFunc("POST /api/another", s.handleAPIAnother)

	mux.HandleFunc("GET /ws", s.handleWebSocket)

	return h2c.NewHandler(mux, &http2.Server{})
}

// ListenAndServe listens on addr and blocks until the server stops or fails.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to listen on "+addr)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener. http.ErrServerClosed is reported as
// a clean stop.
func (s *Server) Serve(listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadTimeout,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.server = srv
	s.mu.Unlock()

	s.logger.WithField("addr", listener.Addr().String()).Info("Praise server listening")
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and ends every session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.store.Close()
	s.mu.Lock()
	s.closed = true
	srv := s.server
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// NotifyWorkersChanged tells every open page that the asset folder changed.
func (s *Server) NotifyWorkersChanged(path string) {
	s.store.Broadcast(session.Update{Type: session.UpdateWorkers, Source: "watch", Payload: path})
}

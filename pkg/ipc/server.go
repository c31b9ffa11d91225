// SPDX-License-Identifier: MPL-2.0

package ipc

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hostlog/hostlog/internal/core/serverbase"
	"github.com/hostlog/hostlog/pkg/bridge"
	"github.com/hostlog/hostlog/pkg/types"
)

const (
	// DefaultHost is the loopback address the server binds to.
	DefaultHost = "127.0.0.1"
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	maxEnvelopeSize   = 4 << 20
	subscriberBacklog = 256
)

// Config configures a Server.
type Config struct {
	Host            string
	Port            types.ListenPort
	ShutdownTimeout time.Duration
	Logger          *log.Logger
}

// Server is the coordinator end of the bridge. It implements
// bridge.Transport: Listen receives messages sent by content processes and
// Send broadcasts to every subscribed content process.
type Server struct {
	*serverbase.Base

	cfg        Config
	token      AuthToken
	listener   net.Listener
	httpServer *http.Server
	logger     *log.Logger
	seen       *seenIDs

	routerMu sync.Mutex
	router   *bridge.Router

	// dispatchMu keeps listeners from running concurrently and preserves
	// arrival order across senders.
	dispatchMu sync.Mutex

	subMu       sync.Mutex
	subscribers map[string]chan Envelope
}

// NewServer prepares a server; it does not listen until Start.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.Port.Validate(); err != nil {
		return nil, err
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	token, err := generateToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s := &Server{
		Base:        serverbase.NewBase(serverbase.WithLogger(logger, "ipc server")),
		cfg:         cfg,
		token:       AuthToken(token),
		logger:      logger,
		seen:        newSeenIDs(defaultSeenCapacity),
		subscribers: make(map[string]chan Envelope),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+pathSend, s.authorized(s.handleSend))
	mux.HandleFunc("POST "+pathInvoke, s.authorized(s.handleInvoke))
	mux.HandleFunc("GET "+pathEvents, s.authorized(s.handleEvents))
	mux.HandleFunc("GET "+pathHealth, s.handleHealth)

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	if err := s.TransitionToStarting(ctx); err != nil {
		return err
	}

	l, err := net.Listen("tcp", s.cfg.Port.Addr(s.cfg.Host))
	if err != nil {
		err = fmt.Errorf("listen on %s: %w", s.cfg.Port.Addr(s.cfg.Host), err)
		s.TransitionToFailed(err)
		return err
	}
	s.listener = l
	s.httpServer.BaseContext = func(net.Listener) context.Context { return s.Context() }

	s.Go(func(context.Context) {
		if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ipc server stopped unexpectedly", "err", err)
			s.TransitionToFailed(err)
		}
	})

	s.TransitionToRunning()
	s.logger.Debug("ipc server listening", "addr", l.Addr().String())
	return nil
}

// Stop shuts the server down, closing every event stream.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx, s.httpServer.Shutdown)
}

// Addr returns host:port, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL of the server.
func (s *Server) URL() string { return "http://" + s.Addr() }

// Token returns the bearer token clients must present.
func (s *Server) Token() AuthToken { return s.token }

// Env returns the environment entries that make a child process select the
// isolated-content role and reach this server.
func (s *Server) Env(appName, hostVersion string) []string {
	env := []string{
		EnvRole + "=" + RoleContent,
		EnvAddr + "=" + s.Addr(),
		EnvToken + "=" + s.token.String(),
	}
	if appName != "" {
		env = append(env, EnvAppName+"="+appName)
	}
	if hostVersion != "" {
		env = append(env, EnvHostVersion+"="+hostVersion)
	}
	return env
}

// Listen routes messages and invokes from content processes into r.
func (s *Server) Listen(r *bridge.Router) {
	s.routerMu.Lock()
	defer s.routerMu.Unlock()
	s.router = r
}

// Send broadcasts msg on channel to every subscribed content process.
func (s *Server) Send(_ context.Context, channel string, msg bridge.Message) error {
	env := Envelope{ID: uuid.NewString(), Channel: channel, Payload: msg}
	if err := env.Validate(); err != nil {
		return err
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- env:
		default:
			s.logger.Warn("dropping message for slow subscriber", "subscriber", id, "channel", channel)
		}
	}
	return nil
}

// Invoke is not supported from the coordinator side.
func (s *Server) Invoke(context.Context, string, bridge.Message) (bridge.Message, error) {
	return nil, bridge.ErrNoPeer
}

// Subscribers returns the number of connected event streams.
func (s *Server) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subscribers)
}

func (s *Server) currentRouter() *bridge.Router {
	s.routerMu.Lock()
	defer s.routerMu.Unlock()
	return s.router
}

func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	want := []byte("Bearer " + s.token.String())
	return func(w http.ResponseWriter, r *http.Request) {
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) readEnvelope(w http.ResponseWriter, r *http.Request) (Envelope, bool) {
	var env Envelope
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeSize))
	if err := dec.Decode(&env); err != nil {
		writeReply(w, http.StatusBadRequest, Reply{Error: "invalid JSON: " + err.Error()})
		return env, false
	}
	if err := env.Validate(); err != nil {
		writeReply(w, http.StatusBadRequest, Reply{Error: err.Error()})
		return env, false
	}
	if !s.seen.add(env.ID) {
		s.logger.Debug("dropping duplicate envelope", "id", env.ID, "channel", env.Channel)
		writeReply(w, http.StatusOK, Reply{Duplicate: true})
		return env, false
	}
	return env, true
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	env, ok := s.readEnvelope(w, r)
	if !ok {
		return
	}

	if router := s.currentRouter(); router != nil {
		s.dispatchMu.Lock()
		router.Dispatch(r.Context(), env.Channel, env.Payload)
		s.dispatchMu.Unlock()
	}
	writeReply(w, http.StatusOK, Reply{})
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	env, ok := s.readEnvelope(w, r)
	if !ok {
		return
	}

	router := s.currentRouter()
	if router == nil {
		writeReply(w, http.StatusOK, Reply{NoHandler: true, Error: bridge.ErrNoHandler.Error()})
		return
	}

	payload, err := router.Invoke(r.Context(), env.Channel, env.Payload)
	switch {
	case errors.Is(err, bridge.ErrNoHandler):
		writeReply(w, http.StatusOK, Reply{NoHandler: true, Error: err.Error()})
	case err != nil:
		writeReply(w, http.StatusOK, Reply{Error: err.Error()})
	default:
		writeReply(w, http.StatusOK, Reply{Payload: payload})
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	ch := make(chan Envelope, subscriberBacklog)
	s.subMu.Lock()
	s.subscribers[id] = ch
	s.subMu.Unlock()
	defer func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	s.logger.Debug("content process subscribed", "subscriber", id)

	enc := json.NewEncoder(w)
	for {
		select {
		case env := <-ch:
			if err := enc.Encode(env); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeReply(w http.ResponseWriter, status int, reply Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

func generateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

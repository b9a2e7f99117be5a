package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Hub keeps the live sessions by game ID.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	logger   zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger,
	}
}

// Create starts a session for a new game. An empty fen means the standard
// start position.
func (h *Hub) Create(ctx context.Context, fen string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := h.logger.With().Str("game", id.String()).Logger()

	var g *engine.Game
	if fen == "" {
		g = engine.NewGame(engine.WithLogger(logger))
	} else {
		var err error
		g, err = engine.NewGameFromFEN(fen, engine.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	}

	s := newSession(id, g, logger)

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()

	logger.Info().Str("fen", g.FEN()).Msg("game created")
	return s, nil
}

// Get returns the session for id.
func (h *Hub) Get(id uuid.UUID) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, errors.ErrUnknownGame)
	}
	return s, nil
}

// Lookup parses a game ID string and returns its session.
func (h *Hub) Lookup(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("game %q: %w", id, errors.ErrUnknownGame)
	}
	return h.Get(parsed)
}

// Close stops the session for id and forgets it.
func (h *Hub) Close(id uuid.UUID) error {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("game %s: %w", id, errors.ErrUnknownGame)
	}
	s.Close()
	h.logger.Info().Str("game", id.String()).Msg("game closed")
	return nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown stops every session.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[uuid.UUID]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	h.logger.Info().Int("sessions", len(sessions)).Msg("hub shut down")
}

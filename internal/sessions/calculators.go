package sessions

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/google/uuid"
)

// CalculatorStore is a thread-safe in-memory store of open calculators.
type CalculatorStore struct {
	mu       sync.RWMutex
	sessions map[string]*calculatorSession // key: session ID
	now      func() time.Time
}

type calculatorSession struct {
	mu        sync.Mutex
	id        string
	calc      *engine.Calculator
	createdAt time.Time
	updatedAt time.Time
}

// NewCalculatorStore creates an empty store.
func NewCalculatorStore(opts ...Option) *CalculatorStore {
	o := buildOptions(opts)
	return &CalculatorStore{
		sessions: make(map[string]*calculatorSession),
		now:      o.now,
	}
}

// Open starts a calculator on tool with default inputs and its first result.
func (s *CalculatorStore) Open(tool models.Tool) models.CalculatorSession {
	now := s.now()
	sess := &calculatorSession{
		id:        uuid.New().String(),
		calc:      engine.NewCalculator(tool),
		createdAt: now,
		updatedAt: now,
	}
	view := sess.view()

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return view
}

func (s *CalculatorStore) lookup(id string) (*calculatorSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: calculator %s", ErrNotFound, id)
	}
	return sess, nil
}

// Get returns the current Input and Result State of a session. Viewing a
// session keeps it alive.
func (s *CalculatorStore) Get(id string) (models.CalculatorSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.CalculatorSession{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.updatedAt = s.now()
	return sess.view(), nil
}

// Edit applies one edit event and returns the recomputed state. Edits to the
// same session are applied in arrival order.
func (s *CalculatorStore) Edit(id, fieldID, raw string) (models.CalculatorSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.CalculatorSession{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.calc.Edit(fieldID, raw); err != nil {
		return models.CalculatorSession{}, err
	}
	sess.updatedAt = s.now()
	return sess.view(), nil
}

// Report writes the printable report of a session.
func (s *CalculatorStore) Report(id string, w io.Writer) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.updatedAt = s.now()
	return sess.calc.Report(w)
}

// Close destroys a session and its state.
func (s *CalculatorStore) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return fmt.Errorf("%w: calculator %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (s *CalculatorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SweepIdle closes sessions not touched since cutoff.
func (s *CalculatorStore) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.updatedAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// view must be called with sess.mu held or before the session is shared.
func (sess *calculatorSession) view() models.CalculatorSession {
	return models.CalculatorSession{
		ID:        sess.id,
		ToolID:    sess.calc.Tool().ID,
		Inputs:    sess.calc.Inputs(),
		Result:    sess.calc.Result(),
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
	}
}

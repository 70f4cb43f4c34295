package sessions

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Conversationalist produces one assistant reply for a history plus new
// user text. assistant.Gateway satisfies it.
type Conversationalist interface {
	Converse(ctx context.Context, history []models.Message, text string) string
}

// ConversationStore keeps chat histories and serializes assistant calls so
// that each conversation has at most one outstanding request.
type ConversationStore struct {
	mu    sync.RWMutex
	convs map[string]*conversation // key: conversation ID
	gw    Conversationalist
	now   func() time.Time
}

type conversation struct {
	id   string
	gate *semaphore.Weighted

	mu        sync.Mutex
	messages  []models.Message
	pending   bool
	createdAt time.Time
	updatedAt time.Time
}

// NewConversationStore creates an empty store that replies through gw.
func NewConversationStore(gw Conversationalist, opts ...Option) *ConversationStore {
	o := buildOptions(opts)
	return &ConversationStore{
		convs: make(map[string]*conversation),
		gw:    gw,
		now:   o.now,
	}
}

// Create opens a conversation with an empty history.
func (s *ConversationStore) Create() models.Conversation {
	now := s.now()
	c := &conversation{
		id:        uuid.New().String(),
		gate:      semaphore.NewWeighted(1),
		createdAt: now,
		updatedAt: now,
	}
	view := c.view()

	s.mu.Lock()
	s.convs[c.id] = c
	s.mu.Unlock()

	return view
}

func (s *ConversationStore) lookup(id string) (*conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[id]
	if !ok {
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, id)
	}
	return c, nil
}

// Get returns the ordered history of a conversation and marks it active.
func (s *ConversationStore) Get(id string) (models.Conversation, error) {
	c, err := s.lookup(id)
	if err != nil {
		return models.Conversation{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updatedAt = s.now()
	return c.view(), nil
}

// Send appends a user turn, asks the assistant with the prior history and
// appends its reply. A second Send while one is outstanding fails with
// ErrBusy rather than racing on the history.
func (s *ConversationStore) Send(ctx context.Context, id, text string) (models.Message, models.Conversation, error) {
	c, err := s.lookup(id)
	if err != nil {
		return models.Message{}, models.Conversation{}, err
	}
	if !c.gate.TryAcquire(1) {
		return models.Message{}, models.Conversation{}, fmt.Errorf("%w: %s", ErrBusy, id)
	}
	defer c.gate.Release(1)

	c.mu.Lock()
	history := slices.Clone(c.messages)
	c.messages = append(c.messages, models.Message{Role: models.RoleUser, Content: text})
	c.pending = true
	c.updatedAt = s.now()
	c.mu.Unlock()

	reply := models.Message{
		Role:    models.RoleAssistant,
		Content: s.gw.Converse(ctx, history, text),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, reply)
	c.pending = false
	c.updatedAt = s.now()
	return reply, c.view(), nil
}

// Delete clears a conversation. An in-flight Send still completes but its
// reply is discarded with the conversation.
func (s *ConversationStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.convs[id]; !exists {
		return fmt.Errorf("%w: conversation %s", ErrNotFound, id)
	}
	delete(s.convs, id)
	return nil
}

// Len returns the number of open conversations.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}

// SweepIdle removes conversations not touched since cutoff. Conversations
// waiting on the assistant are kept.
func (s *ConversationStore) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.convs {
		c.mu.Lock()
		idle := !c.pending && c.updatedAt.Before(cutoff)
		c.mu.Unlock()
		if idle {
			delete(s.convs, id)
			removed++
		}
	}
	return removed
}

func (c *conversation) view() models.Conversation {
	msgs := slices.Clone(c.messages)
	if msgs == nil {
		msgs = []models.Message{}
	}
	return models.Conversation{
		ID:        c.id,
		Messages:  msgs,
		Pending:   c.pending,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps conversations in process memory
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]Conversation
	byExternalID  map[string]uuid.UUID
	entries       map[uuid.UUID][]*Item
	nextID        uint
	runs          int
}

// NewInMemoryStore creates an empty store. runs is the history window in user
// turns; 0 replays everything
func NewInMemoryStore(runs int) *InMemoryStore {
	return &InMemoryStore{
		conversations: make(map[uuid.UUID]Conversation),
		byExternalID:  make(map[string]uuid.UUID),
		entries:       make(map[uuid.UUID][]*Item),
		runs:          runs,
	}
}

func (s *InMemoryStore) Open(ctx context.Context, externalID string) (*Session, error) {
	if externalID == "" {
		return nil, errors.New("external id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byExternalID[externalID]; ok {
		return s.session(s.conversations[id]), nil
	}

	now := time.Now().UTC()
	conversation := Conversation{ID: uuid.New(), ExternalID: externalID, CreatedAt: now, UpdatedAt: now}
	s.conversations[conversation.ID] = conversation
	s.byExternalID[externalID] = conversation.ID

	return s.session(conversation), nil
}

func (s *InMemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.session(conversation), nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byExternalID, conversation.ExternalID)
	delete(s.conversations, id)
	delete(s.entries, id)
	return nil
}

func (s *InMemoryStore) session(conversation Conversation) *Session {
	return &Session{conversation: conversation, backend: s, runs: s.runs}
}

func (s *InMemoryStore) items(ctx context.Context, conversationID uuid.UUID) ([]*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*Item, len(s.entries[conversationID]))
	copy(items, s.entries[conversationID])
	return items, nil
}

func (s *InMemoryStore) save(ctx context.Context, items []*Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.conversations[item.ConversationID]; !ok {
			return ErrNotFound
		}
		s.nextID++
		item.ID = s.nextID
		s.entries[item.ConversationID] = append(s.entries[item.ConversationID], item)
	}
	return nil
}

func (s *InMemoryStore) popLast(ctx context.Context, conversationID uuid.UUID) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.entries[conversationID]
	if len(items) == 0 {
		return nil, nil
	}

	last := items[len(items)-1]
	s.entries[conversationID] = items[:len(items)-1]
	return last, nil
}

func (s *InMemoryStore) clear(ctx context.Context, conversationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, conversationID)
	return nil
}

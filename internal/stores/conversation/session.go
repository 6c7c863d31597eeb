package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/memory"
)

// backend is the item storage behind a Session
type backend interface {
	items(ctx context.Context, conversationID uuid.UUID) ([]*Item, error)
	save(ctx context.Context, items []*Item) error
	popLast(ctx context.Context, conversationID uuid.UUID) (*Item, error)
	clear(ctx context.Context, conversationID uuid.UUID) error
}

// Session is one conversation. It implements memory.Session
type Session struct {
	conversation Conversation
	backend      backend
	runs         int
}

var _ memory.Session = (*Session)(nil)

// Conversation returns the stored conversation row
func (s *Session) Conversation() Conversation {
	return s.conversation
}

// WithRuns returns a copy of the session whose history window is the last runs
// user turns. Zero or less keeps every item
func (s *Session) WithRuns(runs int) *Session {
	c := *s
	c.runs = runs
	return &c
}

// SessionID returns the conversation ID as a string
func (s *Session) SessionID(ctx context.Context) string {
	return s.conversation.ID.String()
}

// GetItems returns history in chronological order. With limit > 0 the latest
// limit items are returned; otherwise the configured number of recent user
// turns is returned (all items when no window is set). Leading tool outputs
// whose call fell outside the window are dropped.
func (s *Session) GetItems(ctx context.Context, limit int) ([]memory.TResponseInputItem, error) {
	stored, err := s.backend.items(ctx, s.conversation.ID)
	if err != nil {
		return nil, err
	}

	items := make([]memory.TResponseInputItem, 0, len(stored))
	for _, item := range stored {
		if item.Data.TResponseInputItem != nil {
			items = append(items, *item.Data.TResponseInputItem)
		}
	}

	if limit > 0 {
		if len(items) > limit {
			items = items[len(items)-limit:]
		}
	} else {
		items = lastRuns(items, s.runs)
	}

	for len(items) > 0 {
		if _, ok := outputCallID(items[0]); !ok {
			break
		}
		items = items[1:]
	}

	return items, nil
}

// AddItems appends items, moving each tool output directly after its call
func (s *Session) AddItems(ctx context.Context, responseItems []memory.TResponseInputItem) error {
	if len(responseItems) == 0 {
		return nil
	}

	ordered := pairToolCalls(responseItems)
	now := time.Now().UTC()

	items := make([]*Item, 0, len(ordered))
	for i := range ordered {
		item := withType(ordered[i])
		items = append(items, &Item{
			ConversationID: s.conversation.ID,
			CreatedAt:      now,
			Data:           ItemData{TResponseInputItem: &item},
		})
	}

	return s.backend.save(ctx, items)
}

// PopItem removes and returns the most recent item, or nil when empty
func (s *Session) PopItem(ctx context.Context) (*memory.TResponseInputItem, error) {
	item, err := s.backend.popLast(ctx, s.conversation.ID)
	if err != nil || item == nil {
		return nil, err
	}
	return item.Data.TResponseInputItem, nil
}

// ClearSession removes every item of the conversation
func (s *Session) ClearSession(ctx context.Context) error {
	return s.backend.clear(ctx, s.conversation.ID)
}

// lastRuns keeps the items from the start of the runs-th most recent user message
func lastRuns(items []memory.TResponseInputItem, runs int) []memory.TResponseInputItem {
	if runs <= 0 {
		return items
	}

	seen := 0
	for i := len(items) - 1; i >= 0; i-- {
		if isUserMessage(items[i]) {
			seen++
			if seen == runs {
				return items[i:]
			}
		}
	}
	return items
}

func pairToolCalls(in []memory.TResponseInputItem) []memory.TResponseInputItem {
	items := make([]memory.TResponseInputItem, len(in))
	copy(items, in)

	for i := 1; i < len(items); i++ {
		prevID, prevIsCall := callID(items[i-1])
		if !prevIsCall {
			continue
		}
		if currID, ok := outputCallID(items[i]); ok && currID == prevID {
			continue
		}

		for j := i + 1; j < len(items); j++ {
			if nextID, ok := outputCallID(items[j]); ok && nextID == prevID {
				items[i], items[j] = items[j], items[i]
				break
			}
		}
	}

	return items
}

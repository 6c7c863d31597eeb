package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySqlStore keeps conversations in MySQL using GORM
type MySqlStore struct {
	db   *gorm.DB
	runs int
}

// NewMySqlStore opens the database and migrates the conversation tables.
// runs is the history window in user turns; 0 replays everything
func NewMySqlStore(databaseURL string, runs int) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Conversation{}, &Item{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &MySqlStore{db: db, runs: runs}, nil
}

func (s *MySqlStore) Open(ctx context.Context, externalID string) (*Session, error) {
	if externalID == "" {
		return nil, errors.New("external id cannot be empty")
	}

	conversation := Conversation{ID: uuid.New(), ExternalID: externalID}
	err := s.db.WithContext(ctx).
		Where(Conversation{ExternalID: externalID}).
		FirstOrCreate(&conversation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation: %w", err)
	}

	return s.session(conversation), nil
}

func (s *MySqlStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var conversation Conversation
	if err := s.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return s.session(conversation), nil
}

func (s *MySqlStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation items: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&Conversation{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		return nil
	})
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

func (s *MySqlStore) session(conversation Conversation) *Session {
	return &Session{conversation: conversation, backend: s, runs: s.runs}
}

func (s *MySqlStore) items(ctx context.Context, conversationID uuid.UUID) ([]*Item, error) {
	var items []*Item
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	return items, nil
}

func (s *MySqlStore) save(ctx context.Context, items []*Item) error {
	if err := s.db.WithContext(ctx).Create(items).Error; err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (s *MySqlStore) popLast(ctx context.Context, conversationID uuid.UUID) (*Item, error) {
	var item Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("conversation_id = ?", conversationID).
			Order("created_at DESC").Order("id DESC").
			First(&item).Error
		if err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop item: %w", err)
	}
	return &item, nil
}

func (s *MySqlStore) clear(ctx context.Context, conversationID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&Item{}).Error; err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}

package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySqlStore handles run persistence using GORM
type MySqlStore struct {
	db *gorm.DB
}

// NewMySqlStore opens the database and migrates the runs table
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return NewStoreFromDB(db)
}

// NewStoreFromDB wraps an existing connection
func NewStoreFromDB(db *gorm.DB) (*MySqlStore, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}
	return &MySqlStore{db: db}, nil
}

func (s *MySqlStore) Create(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (s *MySqlStore) Update(ctx context.Context, run *Run) error {
	result := s.db.WithContext(ctx).Save(run)
	if result.Error != nil {
		return fmt.Errorf("failed to update run: %w", result.Error)
	}
	return nil
}

func (s *MySqlStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	if err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// List returns the newest runs first
func (s *MySqlStore) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var runs []*Run
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ListByStatus returns runs in status, oldest first
func (s *MySqlStore) ListByStatus(ctx context.Context, status Status) ([]*Run, error) {
	var runs []*Run
	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at ASC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs by status: %w", err)
	}
	return runs, nil
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

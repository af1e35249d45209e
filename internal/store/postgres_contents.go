package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresContentStore struct {
	db *sql.DB
}

func NewPostgresContentStore(db *sql.DB) *PostgresContentStore {
	return &PostgresContentStore{db: db}
}

func (s *PostgresContentStore) Create(ctx context.Context, c *models.GeneratedContent) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Data == nil {
		c.Data = []string{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contents (id, phone_number, topic, data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.PhoneNumber, c.Topic, pq.Array(c.Data), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

func (s *PostgresContentStore) ListByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.GeneratedContent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, phone_number, topic, data, created_at FROM contents WHERE phone_number = $1`,
		phoneNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	contents := []models.GeneratedContent{}
	for rows.Next() {
		var c models.GeneratedContent
		if err := rows.Scan(&c.ID, &c.PhoneNumber, &c.Topic, pq.Array(&c.Data), &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	return contents, nil
}

func (s *PostgresContentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

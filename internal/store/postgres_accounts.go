package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/models"
)

type PostgresAccountStore struct {
	db *sql.DB
}

func NewPostgresAccountStore(db *sql.DB) *PostgresAccountStore {
	return &PostgresAccountStore{db: db}
}

func (s *PostgresAccountStore) SetAccessCode(ctx context.Context, phoneNumber, code string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (phone_number, access_code, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone_number) DO UPDATE
		SET access_code = EXCLUDED.access_code, updated_at = EXCLUDED.updated_at
	`, phoneNumber, code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set access code: %w", err)
	}
	return nil
}

func (s *PostgresAccountStore) GetAccount(ctx context.Context, phoneNumber string) (*models.UserAccount, error) {
	var acc models.UserAccount
	err := s.db.QueryRowContext(ctx,
		`SELECT phone_number, access_code, updated_at FROM users WHERE phone_number = $1`,
		phoneNumber,
	).Scan(&acc.PhoneNumber, &acc.AccessCode, &acc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acc, nil
}

func (s *PostgresAccountStore) ConsumeAccessCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET access_code = '', updated_at = $3
		WHERE phone_number = $1 AND access_code = $2
	`, phoneNumber, code, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("consume access code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume access code: %w", err)
	}
	return n == 1, nil
}

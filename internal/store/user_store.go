package store

import (
	"context"
	"database/sql"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, userID string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, email, balance, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) Exists(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// Upsert provisions or refreshes the dashboard mirror of an identity-provider
// account. The balance is never touched here.
func (s *UserStore) Upsert(ctx context.Context, tx Execer, userID, username, email string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, username, email, balance)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (id) DO UPDATE SET username = $2, email = $3
	`, userID, username, email)
	return err
}

// AdjustBalance applies a signed decimal delta to the cached balance.
func (s *UserStore) AdjustBalance(ctx context.Context, tx Execer, userID, delta string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET balance = balance + $1::numeric
		WHERE id = $2
	`, delta, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

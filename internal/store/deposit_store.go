package store

import (
	"context"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

type DepositStore struct {
	db DB
}

func NewDepositStore(db DB) *DepositStore {
	return &DepositStore{db: db}
}

type DepositInput struct {
	ID        string
	OwnerID   string
	Amount    string
	Currency  string
	Status    string
	CreatedAt time.Time
}

func (s *DepositStore) Create(ctx context.Context, tx Execer, input DepositInput) error {
	query := `
		INSERT INTO deposit_requests (id, owner_id, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.OwnerID, input.Amount, input.Currency, input.Status, input.CreatedAt,
	)
	return err
}

func (s *DepositStore) GetForUpdate(ctx context.Context, tx Getter, id string) (models.DepositRequest, error) {
	var row models.DepositRequest
	err := tx.GetContext(ctx, &row, `
		SELECT id, amount, currency, status, owner_id, created_at
		FROM deposit_requests
		WHERE id = $1
		FOR UPDATE
	`, id)
	if err != nil {
		return models.DepositRequest{}, err
	}
	return row, nil
}

func (s *DepositStore) UpdateStatus(ctx context.Context, tx Execer, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE deposit_requests SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (s *DepositStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM deposit_requests
		WHERE owner_id = $1
	`, ownerID)
	return count, err
}

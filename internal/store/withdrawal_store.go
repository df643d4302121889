package store

import (
	"context"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

type WithdrawalStore struct {
	db DB
}

func NewWithdrawalStore(db DB) *WithdrawalStore {
	return &WithdrawalStore{db: db}
}

type WithdrawalInput struct {
	ID            string
	OwnerID       string
	Amount        string
	WalletAddress string
	Status        string
	CreatedAt     time.Time
}

func (s *WithdrawalStore) Create(ctx context.Context, tx Execer, input WithdrawalInput) error {
	query := `
		INSERT INTO withdrawal_requests (id, owner_id, amount, wallet_address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.OwnerID, input.Amount, input.WalletAddress, input.Status, input.CreatedAt,
	)
	return err
}

func (s *WithdrawalStore) GetForUpdate(ctx context.Context, tx Getter, id string) (models.WithdrawalRequest, error) {
	var row models.WithdrawalRequest
	err := tx.GetContext(ctx, &row, `
		SELECT id, amount, wallet_address, status, owner_id, created_at
		FROM withdrawal_requests
		WHERE id = $1
		FOR UPDATE
	`, id)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	return row, nil
}

func (s *WithdrawalStore) UpdateStatus(ctx context.Context, tx Execer, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE withdrawal_requests SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (s *WithdrawalStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM withdrawal_requests
		WHERE owner_id = $1
	`, ownerID)
	return count, err
}

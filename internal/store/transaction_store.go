package store

import (
	"context"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

// TransactionStore persists the write-only mirror rows that give transaction
// history one read model across deposit and withdrawal requests. Rows are
// only ever created or status-advanced together with their request row.
type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID        string
	OwnerID   string
	Amount    string
	Currency  *string
	Status    string
	Type      string
	CreatedAt time.Time
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO transaction_records (id, owner_id, amount, currency, status, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.OwnerID, input.Amount, input.Currency, input.Status, input.Type, input.CreatedAt,
	)
	return err
}

func (s *TransactionStore) UpdateStatus(ctx context.Context, tx Execer, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE transaction_records SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (s *TransactionStore) ListByOwner(ctx context.Context, ownerID string) ([]models.TransactionRecord, error) {
	var rows []models.TransactionRecord
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, currency, status, owner_id, type, created_at
		FROM transaction_records
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) ListAll(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	var rows []models.TransactionRecord
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, currency, status, owner_id, type, created_at
		FROM transaction_records
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

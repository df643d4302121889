package store

import (
	"context"
	"database/sql"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

type AdminStore struct {
	db DB
}

func NewAdminStore(db DB) *AdminStore {
	return &AdminStore{db: db}
}

func (s *AdminStore) Create(ctx context.Context, tx Execer, id, username, email, passwordHash string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO admin_accounts (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, id, username, email, passwordHash)
	return err
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (models.AdminAccount, error) {
	var row models.AdminAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, email, password_hash, created_at
		FROM admin_accounts
		WHERE email = $1
	`, email)
	if err != nil {
		return models.AdminAccount{}, err
	}
	return row, nil
}

func (s *AdminStore) GetByID(ctx context.Context, adminID string) (models.AdminAccount, error) {
	var row models.AdminAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, email, password_hash, created_at
		FROM admin_accounts
		WHERE id = $1
	`, adminID)
	if err != nil {
		return models.AdminAccount{}, err
	}
	return row, nil
}

func (s *AdminStore) UpdatePasswordHash(ctx context.Context, tx Execer, adminID, passwordHash string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE admin_accounts
		SET password_hash = $1
		WHERE id = $2
	`, passwordHash, adminID)
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

func (s *AdminStore) Delete(ctx context.Context, tx Execer, adminID string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM admin_accounts WHERE id = $1`, adminID)
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

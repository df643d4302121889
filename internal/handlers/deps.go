package handlers

import (
	"context"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/store"
)

type UserStore interface {
	Get(ctx context.Context, userID string) (models.User, error)
	Upsert(ctx context.Context, tx store.Execer, userID, username, email string) error
}

type TransactionStore interface {
	ListAll(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error)
}

type AdminStore interface {
	Create(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (models.AdminAccount, error)
	GetByID(ctx context.Context, adminID string) (models.AdminAccount, error)
	UpdatePasswordHash(ctx context.Context, tx store.Execer, adminID, passwordHash string) error
	Delete(ctx context.Context, tx store.Execer, adminID string) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

type LedgerService interface {
	SubmitDeposit(ctx context.Context, req services.SubmitDepositRequest) (models.DepositRequest, error)
	SubmitWithdrawal(ctx context.Context, req services.SubmitWithdrawalRequest) (models.WithdrawalRequest, error)
	ListTransactions(ctx context.Context, ownerID string) ([]models.TransactionRecord, error)
	CountDeposits(ctx context.Context, ownerID string) (int, error)
	CountWithdrawals(ctx context.Context, ownerID string) (int, error)
	AdvanceStatus(ctx context.Context, req services.AdvanceStatusRequest) error
}

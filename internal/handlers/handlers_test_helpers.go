package handlers

import (
	"context"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/config"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/db"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/store"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	getFn    func(ctx context.Context, userID string) (models.User, error)
	upsertFn func(ctx context.Context, tx store.Execer, userID, username, email string) error
}

func (s stubUserStore) Get(ctx context.Context, userID string) (models.User, error) {
	if s.getFn == nil {
		return models.User{}, nil
	}
	return s.getFn(ctx, userID)
}

func (s stubUserStore) Upsert(ctx context.Context, tx store.Execer, userID, username, email string) error {
	if s.upsertFn == nil {
		return nil
	}
	return s.upsertFn(ctx, tx, userID, username, email)
}

type stubTransactionStore struct {
	listAllFn func(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error)
}

func (s stubTransactionStore) ListAll(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx, limit, offset)
}

type stubAdminStore struct {
	createFn             func(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error
	getByEmailFn         func(ctx context.Context, email string) (models.AdminAccount, error)
	getByIDFn            func(ctx context.Context, adminID string) (models.AdminAccount, error)
	updatePasswordHashFn func(ctx context.Context, tx store.Execer, adminID, passwordHash string) error
	deleteFn             func(ctx context.Context, tx store.Execer, adminID string) error
}

func (s stubAdminStore) Create(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, username, email, passwordHash)
}

func (s stubAdminStore) GetByEmail(ctx context.Context, email string) (models.AdminAccount, error) {
	if s.getByEmailFn == nil {
		return models.AdminAccount{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubAdminStore) GetByID(ctx context.Context, adminID string) (models.AdminAccount, error) {
	if s.getByIDFn == nil {
		return models.AdminAccount{}, nil
	}
	return s.getByIDFn(ctx, adminID)
}

func (s stubAdminStore) UpdatePasswordHash(ctx context.Context, tx store.Execer, adminID, passwordHash string) error {
	if s.updatePasswordHashFn == nil {
		return nil
	}
	return s.updatePasswordHashFn(ctx, tx, adminID, passwordHash)
}

func (s stubAdminStore) Delete(ctx context.Context, tx store.Execer, adminID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, adminID)
}

type stubAuditStore struct {
	logFn  func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	listFn func(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

func (s stubAuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit, offset)
}

type stubService struct {
	submitDepositFn    func(ctx context.Context, req services.SubmitDepositRequest) (models.DepositRequest, error)
	submitWithdrawalFn func(ctx context.Context, req services.SubmitWithdrawalRequest) (models.WithdrawalRequest, error)
	listFn             func(ctx context.Context, ownerID string) ([]models.TransactionRecord, error)
	countDepositsFn    func(ctx context.Context, ownerID string) (int, error)
	countWithdrawalsFn func(ctx context.Context, ownerID string) (int, error)
	advanceStatusFn    func(ctx context.Context, req services.AdvanceStatusRequest) error
}

func (s stubService) SubmitDeposit(ctx context.Context, req services.SubmitDepositRequest) (models.DepositRequest, error) {
	if s.submitDepositFn == nil {
		return models.DepositRequest{}, nil
	}
	return s.submitDepositFn(ctx, req)
}

func (s stubService) SubmitWithdrawal(ctx context.Context, req services.SubmitWithdrawalRequest) (models.WithdrawalRequest, error) {
	if s.submitWithdrawalFn == nil {
		return models.WithdrawalRequest{}, nil
	}
	return s.submitWithdrawalFn(ctx, req)
}

func (s stubService) ListTransactions(ctx context.Context, ownerID string) ([]models.TransactionRecord, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, ownerID)
}

func (s stubService) CountDeposits(ctx context.Context, ownerID string) (int, error) {
	if s.countDepositsFn == nil {
		return 0, nil
	}
	return s.countDepositsFn(ctx, ownerID)
}

func (s stubService) CountWithdrawals(ctx context.Context, ownerID string) (int, error) {
	if s.countWithdrawalsFn == nil {
		return 0, nil
	}
	return s.countWithdrawalsFn(ctx, ownerID)
}

func (s stubService) AdvanceStatus(ctx context.Context, req services.AdvanceStatusRequest) error {
	if s.advanceStatusFn == nil {
		return nil
	}
	return s.advanceStatusFn(ctx, req)
}

func newTestHandler(txRunner db.TxRunner, users UserStore, transactions TransactionStore, admins AdminStore, audit AuditStore, service LedgerService) *Handler {
	cfg := config.Config{
		AppEnv:                 "test",
		Port:                   "0",
		JWTSecret:              "secret",
		TokenTTL:               time.Hour,
		BcryptCost:             4,
		WithdrawalMinAmountLen: 2,
		AllowedOrigins:         "*",
	}
	return New(txRunner, cfg, users, transactions, admins, audit, service, websocket.NewHub())
}

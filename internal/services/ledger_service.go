package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/db"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/money"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/store"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/validator"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthenticated  = errors.New("caller is not an authenticated principal")
	ErrDuplicateRequest = errors.New("request id already recorded")
	ErrRequestNotFound  = errors.New("request not found")
	ErrInvalidKind      = errors.New("unknown request kind")
	ErrInvalidStatus    = errors.New("status must be COMPLETED or FAILED")
	ErrNotPending       = errors.New("request is no longer pending")
	ErrPersistence      = errors.New("persistence failure")
)

// LedgerService owns the paired write: every deposit or withdrawal request is
// recorded together with its transaction mirror in one serializable
// transaction, so either both rows exist or neither does.
type LedgerService struct {
	txRunner     db.TxRunner
	users        UserStore
	deposits     DepositStore
	withdrawals  WithdrawalStore
	transactions TransactionStore
	audit        AuditStore
	policy       validator.Policy
	hub          LedgerHub
}

type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
	AdjustBalance(ctx context.Context, tx store.Execer, userID, delta string) error
}

type DepositStore interface {
	Create(ctx context.Context, tx store.Execer, input store.DepositInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, id string) (models.DepositRequest, error)
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type WithdrawalStore interface {
	Create(ctx context.Context, tx store.Execer, input store.WithdrawalInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, id string) (models.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.TransactionRecord, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

type LedgerHub interface {
	BroadcastEvent(ownerID string, event websocket.LedgerEvent)
}

func NewLedgerService(txRunner db.TxRunner, users UserStore, deposits DepositStore, withdrawals WithdrawalStore, transactions TransactionStore, audit AuditStore, policy validator.Policy, hub LedgerHub) *LedgerService {
	return &LedgerService{
		txRunner:     txRunner,
		users:        users,
		deposits:     deposits,
		withdrawals:  withdrawals,
		transactions: transactions,
		audit:        audit,
		policy:       policy,
		hub:          hub,
	}
}

type SubmitDepositRequest struct {
	OwnerID   string
	RequestID string
	Amount    string
	Currency  string
}

func (s *LedgerService) SubmitDeposit(ctx context.Context, req SubmitDepositRequest) (models.DepositRequest, error) {
	if req.OwnerID == "" {
		return models.DepositRequest{}, ErrUnauthenticated
	}
	if err := s.policy.ValidateDeposit(req.Amount, req.Currency); err != nil {
		return models.DepositRequest{}, err
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	if err := s.requirePrincipal(ctx, req.OwnerID); err != nil {
		return models.DepositRequest{}, err
	}
	deposit := models.DepositRequest{
		ID:        requestID(req.RequestID),
		Amount:    strings.TrimSpace(req.Amount),
		Currency:  req.Currency,
		Status:    models.StatusPending,
		OwnerID:   req.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.deposits.Create(ctx, tx, store.DepositInput{
			ID:        deposit.ID,
			OwnerID:   deposit.OwnerID,
			Amount:    deposit.Amount,
			Currency:  deposit.Currency,
			Status:    deposit.Status,
			CreatedAt: deposit.CreatedAt,
		}); err != nil {
			return err
		}
		currency := deposit.Currency
		return s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:        deposit.ID,
			OwnerID:   deposit.OwnerID,
			Amount:    deposit.Amount,
			Currency:  &currency,
			Status:    deposit.Status,
			Type:      models.TypeDeposit,
			CreatedAt: deposit.CreatedAt,
		})
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.DepositRequest{}, ErrDuplicateRequest
		}
		return models.DepositRequest{}, s.persistence("submit deposit", err)
	}
	currency := deposit.Currency
	s.hub.BroadcastEvent(deposit.OwnerID, websocket.LedgerEvent{
		RequestID: deposit.ID,
		Type:      models.TypeDeposit,
		Status:    deposit.Status,
		Amount:    deposit.Amount,
		Currency:  &currency,
	})
	return deposit, nil
}

type SubmitWithdrawalRequest struct {
	OwnerID       string
	RequestID     string
	Amount        string
	WalletAddress string
}

func (s *LedgerService) SubmitWithdrawal(ctx context.Context, req SubmitWithdrawalRequest) (models.WithdrawalRequest, error) {
	if req.OwnerID == "" {
		return models.WithdrawalRequest{}, ErrUnauthenticated
	}
	if err := s.policy.ValidateWithdrawal(req.Amount, req.WalletAddress); err != nil {
		return models.WithdrawalRequest{}, err
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	if err := s.requirePrincipal(ctx, req.OwnerID); err != nil {
		return models.WithdrawalRequest{}, err
	}
	withdrawal := models.WithdrawalRequest{
		ID:            requestID(req.RequestID),
		Amount:        strings.TrimSpace(req.Amount),
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		Status:        models.StatusPending,
		OwnerID:       req.OwnerID,
		CreatedAt:     time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.withdrawals.Create(ctx, tx, store.WithdrawalInput{
			ID:            withdrawal.ID,
			OwnerID:       withdrawal.OwnerID,
			Amount:        withdrawal.Amount,
			WalletAddress: withdrawal.WalletAddress,
			Status:        withdrawal.Status,
			CreatedAt:     withdrawal.CreatedAt,
		}); err != nil {
			return err
		}
		// Withdrawal mirrors carry no currency.
		return s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:        withdrawal.ID,
			OwnerID:   withdrawal.OwnerID,
			Amount:    withdrawal.Amount,
			Currency:  nil,
			Status:    withdrawal.Status,
			Type:      models.TypeWithdrawal,
			CreatedAt: withdrawal.CreatedAt,
		})
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.WithdrawalRequest{}, ErrDuplicateRequest
		}
		return models.WithdrawalRequest{}, s.persistence("submit withdrawal", err)
	}
	s.hub.BroadcastEvent(withdrawal.OwnerID, websocket.LedgerEvent{
		RequestID: withdrawal.ID,
		Type:      models.TypeWithdrawal,
		Status:    withdrawal.Status,
		Amount:    withdrawal.Amount,
	})
	return withdrawal, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, ownerID string) ([]models.TransactionRecord, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	records, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.persistence("list transactions", err)
	}
	return records, nil
}

func (s *LedgerService) CountDeposits(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, ErrUnauthenticated
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	count, err := s.deposits.CountByOwner(ctx, ownerID)
	if err != nil {
		return 0, s.persistence("count deposits", err)
	}
	return count, nil
}

func (s *LedgerService) CountWithdrawals(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, ErrUnauthenticated
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	count, err := s.withdrawals.CountByOwner(ctx, ownerID)
	if err != nil {
		return 0, s.persistence("count withdrawals", err)
	}
	return count, nil
}

type AdvanceStatusRequest struct {
	ActorID   string
	RequestID string
	Kind      string
	Status    string
}

// AdvanceStatus moves a pending request to COMPLETED or FAILED. Nothing in
// this service triggers it on its own; the confirmation pipeline (or an
// administrator) calls it once the external processor settles. On COMPLETED
// the owner's cached balance is adjusted in the same transaction.
func (s *LedgerService) AdvanceStatus(ctx context.Context, req AdvanceStatusRequest) error {
	if req.Kind != models.TypeDeposit && req.Kind != models.TypeWithdrawal {
		return ErrInvalidKind
	}
	if req.Status != models.StatusCompleted && req.Status != models.StatusFailed {
		return ErrInvalidStatus
	}
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()
	var event websocket.LedgerEvent
	var ownerID string
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var amount string
		var currency *string
		switch req.Kind {
		case models.TypeDeposit:
			deposit, err := s.deposits.GetForUpdate(ctx, tx, req.RequestID)
			if err != nil {
				if err == sql.ErrNoRows {
					return ErrRequestNotFound
				}
				return err
			}
			if deposit.Status != models.StatusPending {
				return ErrNotPending
			}
			if err := s.deposits.UpdateStatus(ctx, tx, req.RequestID, req.Status); err != nil {
				return err
			}
			ownerID = deposit.OwnerID
			amount = deposit.Amount
			currency = &deposit.Currency
			if req.Status == models.StatusCompleted {
				if err := s.users.AdjustBalance(ctx, tx, deposit.OwnerID, deposit.Amount); err != nil {
					return err
				}
			}
		case models.TypeWithdrawal:
			withdrawal, err := s.withdrawals.GetForUpdate(ctx, tx, req.RequestID)
			if err != nil {
				if err == sql.ErrNoRows {
					return ErrRequestNotFound
				}
				return err
			}
			if withdrawal.Status != models.StatusPending {
				return ErrNotPending
			}
			if err := s.withdrawals.UpdateStatus(ctx, tx, req.RequestID, req.Status); err != nil {
				return err
			}
			ownerID = withdrawal.OwnerID
			amount = withdrawal.Amount
			if req.Status == models.StatusCompleted {
				debit, err := decimal.NewFromString(strings.TrimSpace(withdrawal.Amount))
				if err != nil {
					return validator.ErrInvalidAmount
				}
				if err := s.users.AdjustBalance(ctx, tx, withdrawal.OwnerID, money.Negate(debit)); err != nil {
					return err
				}
			}
		}
		if err := s.transactions.UpdateStatus(ctx, tx, req.RequestID, req.Status); err != nil {
			return err
		}
		event = websocket.LedgerEvent{
			RequestID: req.RequestID,
			Type:      req.Kind,
			Status:    req.Status,
			Amount:    amount,
			Currency:  currency,
		}
		data, _ := json.Marshal(map[string]string{
			"kind":   req.Kind,
			"status": req.Status,
		})
		return s.audit.Log(ctx, tx, req.ActorID, "advance_status", "request", req.RequestID, string(data))
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrNotPending), errors.Is(err, validator.ErrInvalidAmount):
			return err
		default:
			return s.persistence("advance status", err)
		}
	}
	s.hub.BroadcastEvent(ownerID, event)
	return nil
}

func (s *LedgerService) requirePrincipal(ctx context.Context, ownerID string) error {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return s.persistence("resolve principal", err)
	}
	if !exists {
		return ErrUnauthenticated
	}
	return nil
}

// persistence logs the full store error server-side and returns the generic
// sentinel so callers never see internal detail.
func (s *LedgerService) persistence(op string, err error) error {
	logrus.WithError(err).WithField("op", op).Error("ledger store failure")
	return fmt.Errorf("%w: %s", ErrPersistence, op)
}

func requestID(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return strings.TrimSpace(id)
}

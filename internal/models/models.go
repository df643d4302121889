package models

import "time"

// Request and mirror statuses. The literals are persisted and must not change.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Transaction record types.
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
)

// User is the dashboard-side mirror of an identity-provider account. The ID is
// the provider-issued external identifier; Balance is the cached monetary
// balance adjusted only when a request is advanced to COMPLETED.
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Balance   string    `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type DepositRequest struct {
	ID        string    `db:"id" json:"id"`
	Amount    string    `db:"amount" json:"amount"`
	Currency  string    `db:"currency" json:"currency"`
	Status    string    `db:"status" json:"status"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type WithdrawalRequest struct {
	ID            string    `db:"id" json:"id"`
	Amount        string    `db:"amount" json:"amount"`
	WalletAddress string    `db:"wallet_address" json:"walletAddress"`
	Status        string    `db:"status" json:"status"`
	OwnerID       string    `db:"owner_id" json:"ownerId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// TransactionRecord mirrors exactly one DepositRequest or WithdrawalRequest
// under the same id, giving transaction history a single read model.
// Currency is null for withdrawals.
type TransactionRecord struct {
	ID        string    `db:"id" json:"id"`
	Amount    string    `db:"amount" json:"amount"`
	Currency  *string   `db:"currency" json:"currency,omitempty"`
	Status    string    `db:"status" json:"status"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	Type      string    `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type AdminAccount struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/auth"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/middleware"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/validator"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/websocket"
)

type depositRequest struct {
	ID       string `json:"id"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required"`
}

func (h *Handler) SubmitDeposit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	deposit, err := h.service.SubmitDeposit(r.Context(), services.SubmitDepositRequest{
		OwnerID:   ownerID,
		RequestID: req.ID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	if err != nil {
		h.respondLedgerError(w, err, "deposit_failed")
		return
	}
	respondJSON(w, http.StatusCreated, deposit)
}

type withdrawalRequest struct {
	ID            string `json:"id"`
	Amount        string `json:"amount" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

func (h *Handler) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req withdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	withdrawal, err := h.service.SubmitWithdrawal(r.Context(), services.SubmitWithdrawalRequest{
		OwnerID:       ownerID,
		RequestID:     req.ID,
		Amount:        req.Amount,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		h.respondLedgerError(w, err, "withdrawal_failed")
		return
	}
	respondJSON(w, http.StatusCreated, withdrawal)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	records, err := h.service.ListTransactions(r.Context(), ownerID)
	if err != nil {
		h.respondLedgerError(w, err, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) WSLedger(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}

func (h *Handler) respondLedgerError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, validator.ErrInvalidAmount),
		errors.Is(err, validator.ErrAmountTooShort),
		errors.Is(err, validator.ErrUnsupportedCurrency),
		errors.Is(err, validator.ErrMissingWalletAddress):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrDuplicateRequest):
		respondError(w, http.StatusConflict, "duplicate_request")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/middleware"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Dashboard backs the landing cards: cached balance plus total deposit and
// withdrawal counts.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.users.Get(r.Context(), ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		logrus.WithError(err).Error("dashboard load failed")
		respondError(w, http.StatusInternalServerError, "unable to load dashboard")
		return
	}
	deposits, err := h.service.CountDeposits(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load dashboard")
		return
	}
	withdrawals, err := h.service.CountWithdrawals(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load dashboard")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"balance":          user.Balance,
		"totalDeposits":    deposits,
		"totalWithdrawals": withdrawals,
		"username":         user.Username,
		"email":            user.Email,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.users.Get(r.Context(), ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateProfile provisions or refreshes the dashboard mirror of the
// identity-provider account. A principal exists for ledger writes once its
// profile has been saved.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.users.Upsert(r.Context(), tx, ownerID, req.Username, req.Email)
	})
	if err != nil {
		logrus.WithError(err).Error("profile update failed")
		respondError(w, http.StatusInternalServerError, "unable to update profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"id":       ownerID,
		"username": req.Username,
		"email":    req.Email,
	})
}

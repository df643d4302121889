package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/auth"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/db"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/middleware"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type provisionAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) ProvisionAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req provisionAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	adminID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.admins.Create(r.Context(), tx, adminID, req.Username, req.Email, passwordHash); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{"email": req.Email})
		return h.audit.Log(r.Context(), tx, actorID, "provision_admin", "admin_account", adminID, string(data))
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "email already exists")
			return
		}
		logrus.WithError(err).Error("admin provisioning failed")
		respondError(w, http.StatusInternalServerError, "unable to provision admin")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":       adminID,
		"username": req.Username,
		"email":    req.Email,
	})
}

type rotatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) RotateAdminPassword(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	adminID := chi.URLParam(r, "id")
	var req rotatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.admins.UpdatePasswordHash(r.Context(), tx, adminID, passwordHash); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, actorID, "rotate_password", "admin_account", adminID, "{}")
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "admin not found")
			return
		}
		logrus.WithError(err).Error("password rotation failed")
		respondError(w, http.StatusInternalServerError, "unable to rotate password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "rotated"})
}

func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	adminID := chi.URLParam(r, "id")
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.admins.Delete(r.Context(), tx, adminID); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, actorID, "delete_admin", "admin_account", adminID, "{}")
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "admin not found")
			return
		}
		logrus.WithError(err).Error("admin deletion failed")
		respondError(w, http.StatusInternalServerError, "unable to delete admin")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type advanceStatusRequest struct {
	Kind   string `json:"kind" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// AdvanceRequestStatus is the explicit settlement trigger: nothing advances a
// request out of PENDING except this call.
func (h *Handler) AdvanceRequestStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	requestID := chi.URLParam(r, "id")
	var req advanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	err := h.service.AdvanceStatus(r.Context(), services.AdvanceStatusRequest{
		ActorID:   actorID,
		RequestID: requestID,
		Kind:      req.Kind,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidKind), errors.Is(err, services.ErrInvalidStatus), errors.Is(err, validator.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			respondError(w, http.StatusNotFound, "request not found")
		case errors.Is(err, services.ErrNotPending):
			respondError(w, http.StatusConflict, "request is no longer pending")
		default:
			respondError(w, http.StatusInternalServerError, "unable to advance request")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *Handler) AdminListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := parseInt(query.Get("limit"), 50)
	page := parseInt(query.Get("page"), 1)
	offset := (page - 1) * limit
	rows, err := h.transactions.ListAll(r.Context(), limit, offset)
	if err != nil {
		logrus.WithError(err).Error("admin transaction listing failed")
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := parseInt(query.Get("limit"), 50)
	page := parseInt(query.Get("page"), 1)
	offset := (page - 1) * limit
	rows, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load audit logs")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/auth"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// AdminLogin is the one endpoint with a frozen wire contract: response bodies
// and cookie attributes are kept exactly as deployed dashboards expect them.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.adminLoginPost(w, r)
	case http.MethodGet:
		respondMessage(w, http.StatusOK, "Login endpoint is working. Please use POST method to login.")
	default:
		respondMessage(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", r.Method))
	}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) adminLoginPost(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	admin, err := h.admins.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			// Unknown email and wrong password must be indistinguishable.
			h.invalidCredentials(w)
			return
		}
		logrus.WithError(err).Error("admin lookup failed")
		h.loginFailed(w)
		return
	}
	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		h.invalidCredentials(w)
		return
	}
	token, err := auth.GenerateAdminToken(h.cfg.JWTSecret, admin.ID, admin.Email, h.cfg.TokenTTL)
	if err != nil {
		logrus.WithError(err).Error("admin token generation failed")
		h.loginFailed(w)
		return
	}
	if err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		data, _ := json.Marshal(map[string]string{
			"ip":         r.RemoteAddr,
			"user_agent": r.UserAgent(),
		})
		return h.audit.Log(r.Context(), tx, admin.ID, "admin_login", "admin_account", admin.ID, string(data))
	}); err != nil {
		logrus.WithError(err).Error("admin login audit failed")
		h.loginFailed(w)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

func (h *Handler) invalidCredentials(w http.ResponseWriter) {
	respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
}

func (h *Handler) loginFailed(w http.ResponseWriter) {
	respondMessage(w, http.StatusInternalServerError, "An error occurred during login")
}

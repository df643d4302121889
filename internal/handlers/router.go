package handlers

import (
	"net/http"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/config"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/db"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/middleware"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	govalidator "github.com/go-playground/validator/v10"
)

var validate = govalidator.New()

type Handler struct {
	txRunner     db.TxRunner
	cfg          config.Config
	users        UserStore
	transactions TransactionStore
	admins       AdminStore
	audit        AuditStore
	service      LedgerService
	hub          *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, transactions TransactionStore, admins AdminStore, audit AuditStore, service LedgerService, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:     txRunner,
		cfg:          cfg,
		users:        users,
		transactions: transactions,
		admins:       admins,
		audit:        audit,
		service:      service,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The admin login endpoint dispatches on method itself: GET is a liveness
	// probe, anything besides GET/POST answers 405.
	router.HandleFunc("/adminLogin", h.AdminLogin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/dashboard", h.Dashboard)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/deposits", h.SubmitDeposit)
		r.Post("/withdrawals", h.SubmitWithdrawal)
		r.Get("/transactions", h.ListTransactions)
	})
	router.Get("/ws/ledger", h.WSLedger)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminSession(h.cfg.JWTSecret))
		r.Post("/accounts", h.ProvisionAdmin)
		r.Post("/accounts/{id}/password", h.RotateAdminPassword)
		r.Delete("/accounts/{id}", h.DeleteAdmin)
		r.Post("/requests/{id}/status", h.AdvanceRequestStatus)
		r.Get("/transactions", h.AdminListTransactions)
		r.Get("/audit", h.ListAuditLogs)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

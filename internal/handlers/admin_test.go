package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/auth"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/middleware"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/store"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

func serveAsAdmin(t *testing.T, handler http.HandlerFunc, method, target string, body io.Reader, urlParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateAdminToken("secret", "admin-1", "admin@example.com", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rctx := chi.NewRouteContext()
	for key, value := range urlParams {
		rctx.URLParams.Add(key, value)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	middleware.AdminSession("secret")(handler).ServeHTTP(rr, req)
	return rr
}

func TestProvisionAdmin(t *testing.T) {
	var createdHash string
	var audited bool
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		createFn: func(_ context.Context, _ store.Execer, id, username, email, passwordHash string) error {
			if id == "" || username != "operator" || email != "ops@example.com" {
				t.Fatalf("unexpected create: %s %s %s", id, username, email)
			}
			createdHash = passwordHash
			return nil
		},
	}, stubAuditStore{
		logFn: func(_ context.Context, _ store.Execer, actorID, action, _, _, _ string) error {
			if actorID != "admin-1" || action != "provision_admin" {
				t.Fatalf("unexpected audit entry: %s %s", actorID, action)
			}
			audited = true
			return nil
		},
	}, stubService{})

	body := strings.NewReader(`{"username":"operator","email":"ops@example.com","password":"longenough1"}`)
	rr := serveAsAdmin(t, h.ProvisionAdmin, http.MethodPost, "/admin/accounts", body, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if createdHash == "" || createdHash == "longenough1" {
		t.Fatalf("password must be stored hashed, got %q", createdHash)
	}
	if !auth.CheckPassword(createdHash, "longenough1") {
		t.Fatalf("stored hash must verify the password")
	}
	if !audited {
		t.Fatalf("expected an audit entry")
	}
}

func TestProvisionAdminDuplicateEmail(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		createFn: func(_ context.Context, _ store.Execer, _, _, _, _ string) error {
			return &pq.Error{Code: "23505"}
		},
	}, stubAuditStore{}, stubService{})

	body := strings.NewReader(`{"username":"operator","email":"ops@example.com","password":"longenough1"}`)
	rr := serveAsAdmin(t, h.ProvisionAdmin, http.MethodPost, "/admin/accounts", body, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestProvisionAdminRejectsWeakPayload(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		createFn: func(_ context.Context, _ store.Execer, _, _, _, _ string) error {
			t.Fatalf("invalid payloads must not be persisted")
			return nil
		},
	}, stubAuditStore{}, stubService{})

	for _, body := range []string{
		`{"username":"op","email":"ops@example.com","password":"longenough1"}`,
		`{"username":"operator","email":"not-an-email","password":"longenough1"}`,
		`{"username":"operator","email":"ops@example.com","password":"short"}`,
	} {
		rr := serveAsAdmin(t, h.ProvisionAdmin, http.MethodPost, "/admin/accounts", strings.NewReader(body), nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestProvisionAdminRequiresSession(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{}, stubAuditStore{}, stubService{})
	req := httptest.NewRequest(http.MethodPost, "/admin/accounts", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	middleware.AdminSession("secret")(http.HandlerFunc(h.ProvisionAdmin)).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRotateAdminPassword(t *testing.T) {
	var rotatedID string
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		updatePasswordHashFn: func(_ context.Context, _ store.Execer, adminID, passwordHash string) error {
			rotatedID = adminID
			if passwordHash == "rotatedpass1" {
				t.Fatalf("password must be stored hashed")
			}
			return nil
		},
	}, stubAuditStore{}, stubService{})

	body := strings.NewReader(`{"password":"rotatedpass1"}`)
	rr := serveAsAdmin(t, h.RotateAdminPassword, http.MethodPost, "/admin/accounts/admin-2/password", body, map[string]string{"id": "admin-2"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rotatedID != "admin-2" {
		t.Fatalf("expected rotation for admin-2, got %q", rotatedID)
	}
}

func TestRotateAdminPasswordUnknownAccount(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		updatePasswordHashFn: func(_ context.Context, _ store.Execer, _, _ string) error {
			return sql.ErrNoRows
		},
	}, stubAuditStore{}, stubService{})

	body := strings.NewReader(`{"password":"rotatedpass1"}`)
	rr := serveAsAdmin(t, h.RotateAdminPassword, http.MethodPost, "/admin/accounts/ghost/password", body, map[string]string{"id": "ghost"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteAdmin(t *testing.T) {
	var deleted string
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		deleteFn: func(_ context.Context, _ store.Execer, adminID string) error {
			deleted = adminID
			return nil
		},
	}, stubAuditStore{}, stubService{})

	rr := serveAsAdmin(t, h.DeleteAdmin, http.MethodDelete, "/admin/accounts/admin-2", nil, map[string]string{"id": "admin-2"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if deleted != "admin-2" {
		t.Fatalf("expected deletion of admin-2, got %q", deleted)
	}
}

func TestDeleteAdminUnknownAccount(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{
		deleteFn: func(_ context.Context, _ store.Execer, _ string) error {
			return sql.ErrNoRows
		},
	}, stubAuditStore{}, stubService{})

	rr := serveAsAdmin(t, h.DeleteAdmin, http.MethodDelete, "/admin/accounts/ghost", nil, map[string]string{"id": "ghost"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAdvanceRequestStatus(t *testing.T) {
	var advanced services.AdvanceStatusRequest
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{}, stubAuditStore{}, stubService{
		advanceStatusFn: func(_ context.Context, req services.AdvanceStatusRequest) error {
			advanced = req
			return nil
		},
	})

	body := strings.NewReader(`{"kind":"DEPOSIT","status":"COMPLETED"}`)
	rr := serveAsAdmin(t, h.AdvanceRequestStatus, http.MethodPost, "/admin/requests/dep-1/status", body, map[string]string{"id": "dep-1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if advanced.ActorID != "admin-1" || advanced.RequestID != "dep-1" || advanced.Kind != "DEPOSIT" || advanced.Status != "COMPLETED" {
		t.Fatalf("unexpected request: %#v", advanced)
	}
}

func TestAdvanceRequestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrInvalidKind, http.StatusBadRequest},
		{services.ErrInvalidStatus, http.StatusBadRequest},
		{validator.ErrInvalidAmount, http.StatusBadRequest},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{services.ErrNotPending, http.StatusConflict},
		{services.ErrPersistence, http.StatusInternalServerError},
	}
	for _, c := range cases {
		h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{}, stubAuditStore{}, stubService{
			advanceStatusFn: func(_ context.Context, _ services.AdvanceStatusRequest) error {
				return c.err
			},
		})
		body := strings.NewReader(`{"kind":"DEPOSIT","status":"COMPLETED"}`)
		rr := serveAsAdmin(t, h.AdvanceRequestStatus, http.MethodPost, "/admin/requests/dep-1/status", body, map[string]string{"id": "dep-1"})
		if rr.Code != c.status {
			t.Fatalf("error %v: expected %d, got %d", c.err, c.status, rr.Code)
		}
	}
}

func TestAdminListTransactionsPaging(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{
		listAllFn: func(_ context.Context, limit, offset int) ([]models.TransactionRecord, error) {
			if limit != 10 || offset != 20 {
				t.Fatalf("unexpected paging: limit=%d offset=%d", limit, offset)
			}
			return nil, nil
		},
	}, stubAdminStore{}, stubAuditStore{}, stubService{})

	rr := serveAsAdmin(t, h.AdminListTransactions, http.MethodGet, "/admin/transactions?limit=10&page=3", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestListAuditLogs(t *testing.T) {
	h := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubTransactionStore{}, stubAdminStore{}, stubAuditStore{
		listFn: func(_ context.Context, limit, offset int) ([]map[string]any, error) {
			if limit != 50 || offset != 0 {
				t.Fatalf("unexpected paging: limit=%d offset=%d", limit, offset)
			}
			return []map[string]any{{"id": "log-1", "action": "admin_login"}}, nil
		},
	}, stubService{})

	rr := serveAsAdmin(t, h.ListAuditLogs, http.MethodGet, "/admin/audit", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var logs []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &logs); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(logs) != 1 || logs[0]["action"] != "admin_login" {
		t.Fatalf("unexpected logs: %#v", logs)
	}
}

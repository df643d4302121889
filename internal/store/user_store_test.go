package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/models"
)

func TestUserStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM users") || !strings.Contains(query, "WHERE id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.User) = models.User{ID: "user-1", Balance: "150.50"}
			return nil
		},
	})
	row, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Balance != "150.50" {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestUserStoreExists(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "COUNT(1)") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int) = 1
			return nil
		},
	})
	ok, err := store.Exists(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected user to exist")
	}
}

func TestUserStoreUpsert(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO users") || !strings.Contains(query, "ON CONFLICT (id) DO UPDATE") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[0] != "user-1" || args[1] != "daniel" || args[2] != "daniel@example.com" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.Upsert(ctx, execer, "user-1", "daniel", "daniel@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreAdjustBalance(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "balance = balance + $1::numeric") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != "-75.25" || args[1] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.AdjustBalance(ctx, execer, "user-1", "-75.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreAdjustBalanceMissingUser(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, _ string, _ ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.AdjustBalance(ctx, execer, "ghost", "10"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

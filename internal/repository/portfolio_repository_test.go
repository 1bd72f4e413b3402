package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/database"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/testutil"
)

// stores returns one fresh instance of every Store implementation.
func stores(t *testing.T) map[string]repository.Store {
	t.Helper()

	dialect, err := database.Dialect(database.DriverSQLite)
	if err != nil {
		t.Fatalf("Dialect() returned unexpected error: %v", err)
	}
	return map[string]repository.Store{
		"memory": repository.NewMemoryPortfolioRepository(),
		"sqlite": repository.NewPortfolioRepository(testutil.SetupTestDB(t), dialect),
	}
}

// TestStore_CreateAndGet tests the create/get round trip for every store.
//
// WHY: Derived fields are not persisted by the SQL store; they must come back
// recomputed and identical to what was stored.
func TestStore_CreateAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			purchase := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
			inv := testutil.NewInvestment("TCS").WithQuantity(10).WithAverageCost(100).WithCurrentPrice(150).Build()
			inv.PurchaseDate = &purchase

			p := testutil.NewPortfolio().
				WithOwner("user-1").
				WithDescription("Long term savings").
				WithInvestment(inv).
				WithInvestment(testutil.NewInvestment("INFY").WithSector("").Build()).
				Build(t, store)

			got, err := store.Get(ctx, p.ID)
			if err != nil {
				t.Fatalf("Get() returned unexpected error: %v", err)
			}

			if got.OwnerID != "user-1" || got.Name != p.Name || got.RiskProfile != p.RiskProfile || got.Description != "Long term savings" {
				t.Errorf("Metadata mismatch: got %+v", got.Summary())
			}
			if got.TargetAllocation["equity"] != 60 {
				t.Errorf("Expected target allocation to round trip, got %v", got.TargetAllocation)
			}
			if len(got.Investments) != 2 || got.Investments[0].Symbol != "TCS" || got.Investments[1].Symbol != "INFY" {
				t.Fatalf("Expected investments in insertion order, got %+v", got.Investments)
			}
			first := got.Investments[0]
			if first.InvestedAmount != 1000 || first.CurrentValue != 1500 || first.ReturnPercentage != 50 {
				t.Errorf("Derived fields not recomputed: %+v", first)
			}
			if first.PurchaseDate == nil || !first.PurchaseDate.Equal(purchase) {
				t.Errorf("Expected purchase date %v, got %v", purchase, first.PurchaseDate)
			}
			if got.TotalInvested != p.TotalInvested || got.CurrentValue != p.CurrentValue {
				t.Errorf("Aggregates mismatch: got %v/%v want %v/%v", got.TotalInvested, got.CurrentValue, p.TotalInvested, p.CurrentValue)
			}
			if !got.CreatedAt.Equal(testutil.FixedTime) || !got.UpdatedAt.Equal(testutil.FixedTime) {
				t.Errorf("Timestamps mismatch: %v / %v", got.CreatedAt, got.UpdatedAt)
			}
		})
	}
}

// TestStore_Isolation tests that returned portfolios are copies.
func TestStore_Isolation(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := testutil.NewPortfolio().WithInvestment(testutil.NewInvestment("A").Build()).Build(t, store)

			got, _ := store.Get(ctx, p.ID)
			got.Investments[0].Quantity = 999
			got.TargetAllocation["equity"] = 1

			again, _ := store.Get(ctx, p.ID)
			if again.Investments[0].Quantity != 10 || again.TargetAllocation["equity"] != 60 {
				t.Error("Mutating a returned portfolio changed stored state")
			}
		})
	}
}

// TestStore_Save tests replacing a portfolio's investments.
//
// WHY: Both stores must derive aggregates from the investments they keep, so
// a removed investment never leaves its amount behind in the totals.
func TestStore_Save(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := testutil.NewPortfolio().
				WithInvestment(testutil.NewInvestment("A").Build()).
				WithInvestment(testutil.NewInvestment("B").Build()).
				Build(t, store)

			p.Investments = p.Investments[1:]
			p.Name = "Renamed"
			if err := store.Save(ctx, p); err != nil {
				t.Fatalf("Save() returned unexpected error: %v", err)
			}

			got, _ := store.Get(ctx, p.ID)
			if got.Name != "Renamed" || len(got.Investments) != 1 || got.Investments[0].Symbol != "B" {
				t.Errorf("Unexpected portfolio after save: %+v", got)
			}
			if got.TotalInvested != 1000 {
				t.Errorf("Expected aggregates of remaining investment only, got %v", got.TotalInvested)
			}

			got.TotalInvested = 999999
			got.CurrentValue = -1
			got.Investments[0].CurrentValue = 42
			if err := store.Save(ctx, got); err != nil {
				t.Fatalf("Save() returned unexpected error: %v", err)
			}
			again, _ := store.Get(ctx, p.ID)
			if again.TotalInvested != 1000 || again.CurrentValue != 1000 || again.Investments[0].CurrentValue != 1000 {
				t.Errorf("Expected derived fields recomputed on save, got %+v", again.Summary())
			}

			missing := testutil.NewPortfolio().Value()
			err := store.Save(ctx, missing)
			if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
				t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), missing.ID) {
				t.Errorf("Expected error to name %s, got %v", missing.ID, err)
			}
		})
	}
}

// TestStore_ListAndDelete tests listing by owner and cascading deletes.
func TestStore_ListAndDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := testutil.NewPortfolio().WithOwner("user-1").WithInvestment(testutil.NewInvestment("A").Build()).Build(t, store)
			testutil.CreatePortfolio(t, store, "user-1")
			testutil.CreatePortfolio(t, store, "user-2")

			all, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() returned unexpected error: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("Expected 3 portfolios, got %d", len(all))
			}

			mine, err := store.ListByOwner(ctx, "user-1")
			if err != nil {
				t.Fatalf("ListByOwner() returned unexpected error: %v", err)
			}
			if len(mine) != 2 {
				t.Errorf("Expected 2 portfolios for user-1, got %d", len(mine))
			}

			none, err := store.ListByOwner(ctx, "nobody")
			if err != nil || none == nil || len(none) != 0 {
				t.Errorf("Expected empty non-nil slice, got %v (%v)", none, err)
			}

			if err := store.Delete(ctx, a.ID); err != nil {
				t.Fatalf("Delete() returned unexpected error: %v", err)
			}
			_, err = store.Get(ctx, a.ID)
			if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
				t.Errorf("Expected ErrPortfolioNotFound after delete, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), a.ID) {
				t.Errorf("Expected error to name %s, got %v", a.ID, err)
			}
			if err := store.Delete(ctx, a.ID); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
				t.Errorf("Expected ErrPortfolioNotFound on second delete, got %v", err)
			}
		})
	}
}

// TestPortfolioRepository_DeleteCascades tests that investment rows go with their portfolio.
func TestPortfolioRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPortfolioRepository(db, "sqlite3")

	p := testutil.NewPortfolio().
		WithInvestment(testutil.NewInvestment("A").Build()).
		WithInvestment(testutil.NewInvestment("B").Build()).
		Build(t, repo)
	testutil.AssertRowCount(t, db, "investment", 2)

	if err := repo.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "investment", 0)
	testutil.AssertRowCount(t, db, "portfolio", 0)
}

// TestPortfolioRepository_Rebind tests placeholder rewriting for PostgreSQL.
func TestPortfolioRepository_Rebind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPortfolioRepository(db, "postgres")
	if got := repository.Rebind(repo, "SELECT * FROM t WHERE a = ? AND b = ?"); got != "SELECT * FROM t WHERE a = $1 AND b = $2" {
		t.Errorf("Unexpected rebind result: %q", got)
	}
}

// TestParseTime tests the accepted timestamp layouts.
func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"2024-01-15T10:00:00.000000000Z", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), false},
		{"2024-01-15T15:30:00+05:30", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), false},
		{"15/01/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := repository.ParseTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/service"
	"github.com/niveshai/niveshai-backend/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	setupHandler := func(t *testing.T) (*SystemHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := service.NewSystemService(db, "sqlite", "static")
		return NewSystemHandler(ss, nil), db
	}

	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}

		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}

		if response.Error != "" {
			t.Errorf("Expected no error, got '%s'", response.Error)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupHandler(t)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("memory storage is always healthy", func(t *testing.T) {
		handler := NewSystemHandler(service.NewSystemService(nil, service.MemoryDriver, "static"), nil)

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("returns version information successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db, "sqlite", "static"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.VersionInfo
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AppVersion == "" {
			t.Error("Expected app version")
		}
		if response.StorageDriver != "sqlite" || response.PriceProvider != "static" {
			t.Errorf("Unexpected storage/provider: %+v", response)
		}
		if response.DbVersion < 1 {
			t.Errorf("Expected migrated schema version, got %d", response.DbVersion)
		}
		if !response.Features["price_refresh"] {
			t.Errorf("Expected price_refresh feature, got %v", response.Features)
		}
	})

	t.Run("returns 500 when schema version cannot be read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db, "sqlite", "static"), nil)
		db.Close()

		w := httptest.NewRecorder()
		handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestSystemHandler_RefreshAll(t *testing.T) {
	repo := repository.NewMemoryPortfolioRepository()
	prices := testutil.NewMockPriceLookup(map[string]float64{"A": 120})
	ps := testutil.NewTestPortfolioService(t, repo, prices)
	testutil.NewPortfolio().WithInvestment(testutil.NewInvestment("A").Build()).Build(t, repo)
	testutil.NewPortfolio().WithInvestment(testutil.NewInvestment("A").Build()).Build(t, repo)

	handler := NewSystemHandler(service.NewSystemService(nil, service.MemoryDriver, "static"), ps)

	w := httptest.NewRecorder()
	handler.RefreshAll(w, httptest.NewRequest(http.MethodPost, "/api/system/refresh", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var response model.BulkRefreshResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)
	if !response.Success || response.TotalPortfolios != 2 || response.TotalUpdated != 2 {
		t.Errorf("Unexpected bulk refresh: %+v", response)
	}
}

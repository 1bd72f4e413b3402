package service

import (
	"context"
	"database/sql"

	"github.com/niveshai/niveshai-backend/internal/database"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/version"
)

// MemoryDriver names the in-process storage backend.
const MemoryDriver = "memory"

// SystemService handles system-related operations
type SystemService struct {
	db            *sql.DB
	driver        string
	priceProvider string
	features      map[string]bool
}

// NewSystemService creates a new SystemService.
// db is nil when portfolios are kept in memory.
func NewSystemService(db *sql.DB, driver, priceProvider string) *SystemService {
	return &SystemService{
		db:            db,
		driver:        driver,
		priceProvider: priceProvider,
		features: map[string]bool{
			"price_refresh":      true,
			"portfolio_analysis": true,
			"risk_profiling":     true,
			"advisor_chat":       true,
			"live_updates":       true,
			"scheduled_refresh":  false,
		},
	}
}

// WithFeature toggles a reported feature flag.
func (s *SystemService) WithFeature(name string, enabled bool) *SystemService {
	s.features[name] = enabled
	return s
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	if s.db == nil {
		return ctx.Err()
	}
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// GetVersionInfo reports the application version, the storage backend with
// its schema version and the enabled features.
func (s *SystemService) GetVersionInfo(_ context.Context) (model.VersionInfo, error) {
	info := model.VersionInfo{
		AppVersion:    version.Version,
		StorageDriver: s.driver,
		PriceProvider: s.priceProvider,
		Features:      make(map[string]bool, len(s.features)),
	}
	for k, v := range s.features {
		info.Features[k] = v
	}

	if s.db != nil {
		v, err := database.SchemaVersion(s.db)
		if err != nil {
			return model.VersionInfo{}, err
		}
		info.DbVersion = v
	}
	return info, nil
}

package model

// VersionInfo contains version and storage information for the application.
type VersionInfo struct {
	AppVersion    string          `json:"app_version"`
	StorageDriver string          `json:"storage_driver"`
	DbVersion     int64           `json:"db_version"`
	PriceProvider string          `json:"price_provider"`
	Features      map[string]bool `json:"features"`
}

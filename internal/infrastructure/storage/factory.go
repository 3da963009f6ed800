package storage

import (
	"fmt"

	"dental-center-management/config"
)

// Open selects a Store implementation from the configured driver.
//
//	STORAGE_DRIVER: memory|sqlite|redis|postgres (default sqlite)
//	SQLITE_PATH: file path when driver=sqlite
func Open(cfg config.StorageConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		return NewSQLite(cfg.SQLitePath)
	case DriverRedis:
		return NewRedis(cfg.Redis)
	case DriverPostgres:
		return NewPostgres(cfg.DB)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}

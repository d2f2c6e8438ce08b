package store

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// Supported drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the summary store for driver. path is only used by sqlite.
func Open(driver, path string) (ports.SummaryStore, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewInMemoryStore(), nil
	case DriverSQLite, "sqlite3":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// SQLiteDSN appends the foreign-key pragma so ON DELETE clauses are
// enforced by the embedded backend.
func (d *DatabaseConfig) SQLiteDSN() string {
	if strings.Contains(d.Path, "?") {
		return d.Path
	}
	return d.Path + "?_pragma=foreign_keys(1)"
}

package db

import "gorm.io/gorm"

// EnsureExtension installs a PostgreSQL extension such as postgis.
func EnsureExtension(d *gorm.DB, name string) error {
	return d.Exec(`CREATE EXTENSION IF NOT EXISTS "` + name + `"`).Error
}

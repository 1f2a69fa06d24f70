package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database connection. MySQL is used when DB_DSN is set,
// otherwise a local sqlite file (DB_PATH, default reservation.db).
func InitDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "reservation.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

package database

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the shared database handle. Used by tests to swap in
// an in-memory database.
func SetDB(db *gorm.DB) {
	DB = db
}

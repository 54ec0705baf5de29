package db

import (
	"path/filepath"
	"testing"

	dashhubdb "github.com/nodaire/dashhub/db"
	"gorm.io/gorm"
)

// NewDB creates a throwaway sqlite database for one test.
func NewDB(t *testing.T) (*gorm.DB, error) {
	return dashhubdb.NewDB(filepath.Join(t.TempDir(), "test.db"), false)
}

func CloseDB(gormDB *gorm.DB) error {
	return dashhubdb.Stop(gormDB)
}

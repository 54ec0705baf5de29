package db

import (
	"fmt"

	"github.com/nodaire/dashhub/logger"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"

	"gorm.io/gorm"
)

func NewDB(uri string, logDBQueries bool) (*gorm.DB, error) {
	// avoid SQLITE_BUSY errors with multiple connections
	if uri != ":memory:" {
		uri = uri + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	if logDBQueries {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	gormDB, err := gorm.Open(sqlite.Open(uri), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = migrate(gormDB)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return gormDB, nil
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&UserConfig{},
	)
}

func Stop(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get sql.DB to close")
		return err
	}
	return sqlDB.Close()
}

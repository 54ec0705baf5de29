package config

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/nodaire/dashhub/db"
	"github.com/nodaire/dashhub/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const jwtSecretKey = "JWTSecret"

type config struct {
	Env        *AppConfig
	db         *gorm.DB
	cache      map[string]string
	cacheMutex sync.Mutex
}

func NewConfig(env *AppConfig, gormDB *gorm.DB) (*config, error) {
	cfg := &config{
		Env:   env,
		db:    gormDB,
		cache: map[string]string{},
	}

	// the JWT secret survives restarts so sessions outlive the process
	jwtSecret, err := cfg.Get(jwtSecretKey)
	if err != nil {
		return nil, err
	}
	if jwtSecret == "" {
		hexSecret, err := randomHex(32)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("failed to generate JWT secret")
			return nil, err
		}
		err = cfg.SetUpdate(jwtSecretKey, hexSecret)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("failed to save JWT secret")
			return nil, err
		}
		logger.Logger.Info().Msg("Generated new JWT secret")
	}

	return cfg, nil
}

func (cfg *config) Get(key string) (string, error) {
	cfg.cacheMutex.Lock()
	defer cfg.cacheMutex.Unlock()

	if cachedValue, ok := cfg.cache[key]; ok {
		logger.Logger.Debug().Str("key", key).Msg("hit config cache")
		return cachedValue, nil
	}
	logger.Logger.Debug().Str("key", key).Msg("missed config cache")

	var userConfig db.UserConfig
	err := cfg.db.Where(&db.UserConfig{Key: key}).Limit(1).Find(&userConfig).Error
	if err != nil {
		return "", fmt.Errorf("failed to get configuration value: %w", err)
	}

	cfg.cache[key] = userConfig.Value
	return userConfig.Value, nil
}

func (cfg *config) set(key string, value string, clauses clause.OnConflict) error {
	userConfig := db.UserConfig{Key: key, Value: value}
	result := cfg.db.Clauses(clauses).Create(&userConfig)
	if result.Error != nil {
		return fmt.Errorf("failed to save key to config: %w", result.Error)
	}

	logger.Logger.Debug().Str("key", key).Msg("clearing config cache")
	cfg.cacheMutex.Lock()
	defer cfg.cacheMutex.Unlock()
	delete(cfg.cache, key)

	return nil
}

func (cfg *config) SetIgnore(key string, value string) error {
	clauses := clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}
	err := cfg.set(key, value, clauses)
	if err != nil {
		logger.Logger.Error().Err(err).Str("key", key).Msg("Failed to set config key with ignore")
		return err
	}
	return nil
}

func (cfg *config) SetUpdate(key string, value string) error {
	clauses := clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}
	err := cfg.set(key, value, clauses)
	if err != nil {
		logger.Logger.Error().Err(err).Str("key", key).Msg("Failed to set config key with update")
		return err
	}
	return nil
}

func (cfg *config) GetEnv() *AppConfig {
	return cfg.Env
}

func (cfg *config) GetJWTSecret() (string, error) {
	secret, err := cfg.Get(jwtSecretKey)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", errors.New("no JWT secret configured")
	}
	return secret, nil
}

func (cfg *config) GetBackendURL() string {
	url, err := cfg.Get("BackendURL")
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to fetch BackendURL")
	}
	if url != "" {
		return url
	}
	return cfg.Env.BackendURL
}

func (cfg *config) SetBackendURL(value string) error {
	// empty resets to the environment default
	err := cfg.SetUpdate("BackendURL", value)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update BackendURL")
		return err
	}
	return nil
}

func (cfg *config) AuthEnabled() bool {
	return cfg.Env.DashboardPassword != ""
}

func (cfg *config) CheckDashboardPassword(password string) bool {
	if !cfg.AuthEnabled() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Env.DashboardPassword)) == 1
}

func (cfg *config) GetDefaultWorkDir() string {
	if cfg.Env.Workdir != "" {
		return cfg.Env.Workdir
	}
	return filepath.Join(xdg.DataHome, "dashhub")
}

func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

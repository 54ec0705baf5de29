package config_test

import (
	"testing"

	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/logger"
	testdb "github.com/nodaire/dashhub/tests/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestConfig(t *testing.T, env *config.AppConfig) (config.Config, *gorm.DB) {
	logger.Init("4")

	gormDB, err := testdb.NewDB(t)
	require.NoError(t, err)
	t.Cleanup(func() { testdb.CloseDB(gormDB) })

	cfg, err := config.NewConfig(env, gormDB)
	require.NoError(t, err)
	return cfg, gormDB
}

func TestSetUpdateAndGet(t *testing.T) {
	cfg, _ := createTestConfig(t, &config.AppConfig{})

	require.NoError(t, cfg.SetUpdate("Greeting", "hello"))

	value, err := cfg.Get("Greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	require.NoError(t, cfg.SetUpdate("Greeting", "goodbye"))
	value, err = cfg.Get("Greeting")
	require.NoError(t, err)
	assert.Equal(t, "goodbye", value)
}

func TestSetIgnoreKeepsExistingValue(t *testing.T) {
	cfg, _ := createTestConfig(t, &config.AppConfig{})

	require.NoError(t, cfg.SetUpdate("Key", "original"))
	require.NoError(t, cfg.SetIgnore("Key", "ignored"))

	value, err := cfg.Get("Key")
	require.NoError(t, err)
	assert.Equal(t, "original", value)
}

func TestGetMissingKeyReturnsEmpty(t *testing.T) {
	cfg, _ := createTestConfig(t, &config.AppConfig{})

	value, err := cfg.Get("DoesNotExist")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestBackendURLFallsBackToEnv(t *testing.T) {
	cfg, _ := createTestConfig(t, &config.AppConfig{BackendURL: "http://env-backend:9090"})

	assert.Equal(t, "http://env-backend:9090", cfg.GetBackendURL())

	require.NoError(t, cfg.SetBackendURL("http://runtime-backend:9090"))
	assert.Equal(t, "http://runtime-backend:9090", cfg.GetBackendURL())

	// empty override resets to the environment default
	require.NoError(t, cfg.SetBackendURL(""))
	assert.Equal(t, "http://env-backend:9090", cfg.GetBackendURL())
}

func TestJWTSecretGeneratedOnce(t *testing.T) {
	env := &config.AppConfig{}
	cfg, gormDB := createTestConfig(t, env)

	secret, err := cfg.GetJWTSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 64)

	// a second config over the same database keeps the same secret
	cfg2, err := config.NewConfig(env, gormDB)
	require.NoError(t, err)
	secret2, err := cfg2.GetJWTSecret()
	require.NoError(t, err)
	assert.Equal(t, secret, secret2)
}

func TestDashboardPassword(t *testing.T) {
	cfg, _ := createTestConfig(t, &config.AppConfig{DashboardPassword: "hunter2"})

	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.CheckDashboardPassword("hunter2"))
	assert.False(t, cfg.CheckDashboardPassword("wrong"))

	unauthCfg, _ := createTestConfig(t, &config.AppConfig{})
	assert.False(t, unauthCfg.AuthEnabled())
	// with auth disabled no password is ever accepted
	assert.False(t, unauthCfg.CheckDashboardPassword(""))
}

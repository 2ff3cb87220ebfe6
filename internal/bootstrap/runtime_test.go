package bootstrap

import (
	"context"
	"testing"

	"aurasocial/internal/config"
	"aurasocial/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(redisAddr string) *config.Config {
	return &config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DatabasePath:             ":memory:",
		DBMaxOpenConns:           1,
		DBMaxIdleConns:           1,
		DBConnMaxLifetimeMinutes: 5,
		RedisURL:                 redisAddr,
	}
}

func TestInitRuntime_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rt, err := InitRuntime(context.Background(), testConfig(mr.Addr()))
	require.NoError(t, err)
	defer rt.Close()

	require.NotNil(t, rt.DB)
	require.NotNil(t, rt.Redis)
	assert.Nil(t, rt.Ledger)
	assert.NoError(t, database.Ping(context.Background(), rt.DB))
	assert.NoError(t, rt.Redis.Ping(context.Background()).Err())
}

func TestInitRuntime_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rt, err := InitRuntime(context.Background(), testConfig(addr))
	require.NoError(t, err)
	defer rt.Close()

	assert.NotNil(t, rt.DB)
	assert.Nil(t, rt.Redis)
}

func TestInitRuntime_BadDriver(t *testing.T) {
	cfg := testConfig("")
	cfg.DBDriver = "oracle"

	_, err := InitRuntime(context.Background(), cfg)
	assert.Error(t, err)
}

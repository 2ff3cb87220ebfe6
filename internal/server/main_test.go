package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"aurasocial/internal/config"
	"aurasocial/internal/featureflags"
	"aurasocial/internal/ledger"
	"aurasocial/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "0",
		Env:                    "test",
		AllowedOrigins:         "http://localhost:3000",
		FeatureFlags:           "realtime_push=on,ledger_reads=on",
		BodyLimitMB:            1,
		RateLimitMax:           10000,
		RateLimitWindowSeconds: 60,
	}
}

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

func newTestEnv(t *testing.T, lc *ledger.Client) *testEnv {
	t.Helper()
	return newTestEnvWithFlags(t, testConfig().FeatureFlags, lc)
}

func newTestEnvWithFlags(t *testing.T, flags string, lc *ledger.Client) *testEnv {
	t.Helper()
	cfg := testConfig()
	cfg.FeatureFlags = flags
	db := testutil.NewSQLiteDB(t)
	s := NewServerWithDeps(cfg, Deps{DB: db, Ledger: lc})
	return &testEnv{server: s, app: s.NewApp(), db: db}
}

// rolloutSplit finds one address inside and one outside a percentage rollout.
func rolloutSplit(t *testing.T, flag, raw string) (in, out string) {
	t.Helper()
	m := featureflags.NewManager(raw)
	for i := 0; i < 1000 && (in == "" || out == ""); i++ {
		addr := fmt.Sprintf("0x%040x", i)
		if m.Enabled(flag, addr) {
			if in == "" {
				in = addr
			}
		} else if out == "" {
			out = addr
		}
	}
	require.NotEmpty(t, in)
	require.NotEmpty(t, out)
	return in, out
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) mustDo(t *testing.T, method, path string, body interface{}) []byte {
	t.Helper()
	status, out := e.do(t, method, path, body)
	require.Equal(t, http.StatusOK, status, string(out))
	return out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (e *testEnv) doRaw(t *testing.T, method, path string, body io.Reader) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

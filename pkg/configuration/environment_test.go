package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_OnlyExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "HKN_TEST_ENV_LOAD=ok\n")
	t.Setenv("HKN_TEST_ENV_LOAD", "")
	require.NoError(t, os.Unsetenv("HKN_TEST_ENV_LOAD"))

	n, err := LoadEnv([]string{filepath.Join(tmp, ".env"), filepath.Join(tmp, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("HKN_TEST_ENV_LOAD"))

	n, err = LoadEnv([]string{filepath.Join(tmp, "missing.env")})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "DB_NAME", "DB_HOST", "LOG_LEVEL", "LOG_PATH", "COURSE_SURVEYS_CACHE_DIR", "GO_APP_ENV", "OTEL_ENABLED"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c, err := Load(nil)
	require.NoError(t, err)
	t.Cleanup(c.Unload)

	require.Equal(t, ".", c.CourseSurveys.CacheDir)
	require.Equal(t, logrus.InfoLevel, c.LogrusLogLevel())
	require.Equal(t, "host=localhost port=5432 user=postgres dbname=hkn_development password=postgres sslmode=disable", c.Database.ConnectionString())
	require.Equal(t, "development", c.GoAppEnvironment)
	require.False(t, c.OpenTelemetry.Enabled)
	require.NotNil(t, c.Logger())
}

func TestUse_LoadsOnce(t *testing.T) {
	require.Same(t, Use(), Use())
}

func TestLoad_FromEnvFile(t *testing.T) {
	tmp := t.TempDir()
	logPath := filepath.Join(tmp, "logs", "import.log")
	envFile := filepath.Join(tmp, ".env")
	requireWriteFile(t, envFile, "DATABASE_URL=postgres://hkn@db/hkn\nLOG_LEVEL=debug\nCOURSE_SURVEYS_CACHE_DIR=/var/cache/hkn\nLOG_PATH="+logPath+"\n")
	for _, k := range []string{"DATABASE_URL", "LOG_LEVEL", "LOG_PATH", "COURSE_SURVEYS_CACHE_DIR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c, err := Load([]string{envFile})
	require.NoError(t, err)
	t.Cleanup(c.Unload)

	require.Equal(t, "postgres://hkn@db/hkn", c.Database.ConnectionString())
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
	require.Equal(t, "/var/cache/hkn", c.CourseSurveys.CacheDir)

	c.Logger().Info("hello")
	body, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(body), "hello")
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestFileLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "import.log")

	f, logger, err := FileLogger(logrus.InfoLevel, path)
	require.NoError(t, err)
	logger.Info("Loading instructors.")
	logger.Debug("hidden")
	require.NoError(t, f.Close())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), "Loading instructors.")
	require.NotContains(t, string(body), "hidden")
}

func TestConsoleLogger_Level(t *testing.T) {
	logger := ConsoleLogger(logrus.WarnLevel)
	require.Equal(t, logrus.WarnLevel, logger.GetLevel())
	require.False(t, logger.IsLevelEnabled(logrus.InfoLevel))
}

func TestSetupTracing_InstallsProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cleanup := SetupTracing(context.Background(), "import-course-surveys", "localhost:4318")
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)
	cleanup()
}

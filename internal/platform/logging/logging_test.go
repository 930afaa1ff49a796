package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sparks/internal/platform/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sparks.log")
	logger, err := logging.New(path, "debug")
	require.NoError(t, err)

	logger.Info("session restored")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `"msg":"session restored"`), string(raw))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	require.Error(t, err)
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, logging.OrNop(nil))
}

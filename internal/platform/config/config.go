package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL = "https://solo-sparks-backend-3.onrender.com/api"
	EnvPrefix         = "SPARKS"
	fileName          = "config"
)

type Config struct {
	DataDir    string
	DBPath     string
	LogPath    string
	JournalDir string
	APIBaseURL string
	LogLevel   string
	// Timeout of zero leaves the HTTP transport defaults in charge.
	Timeout time.Duration
}

// Overrides carries explicit values from command-line flags. Empty fields are ignored.
type Overrides struct {
	APIBaseURL string
	LogLevel   string
}

// DefaultDataDir returns ~/.sparks.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".sparks"), nil
}

// New resolves configuration in order: defaults, <dataDir>/config.yaml, SPARKS_* env, overrides.
func New(dataDir string, overrides Overrides) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIBaseURL)
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "0s")
	v.SetDefault("journal_dir", filepath.Join(dataDir, "journal"))

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if overrides.APIBaseURL != "" {
		v.Set("api_url", overrides.APIBaseURL)
	}
	if overrides.LogLevel != "" {
		v.Set("log_level", overrides.LogLevel)
	}

	apiURL := strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/")
	if apiURL == "" {
		return Config{}, fmt.Errorf("api_url must not be empty")
	}
	timeout := v.GetDuration("timeout")
	if timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be non-negative, got %s", timeout)
	}

	return Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "sparks.db"),
		LogPath:    filepath.Join(dataDir, "logs", "sparks.log"),
		JournalDir: v.GetString("journal_dir"),
		APIBaseURL: apiURL,
		LogLevel:   v.GetString("log_level"),
		Timeout:    timeout,
	}, nil
}

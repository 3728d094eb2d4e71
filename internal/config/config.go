package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	appName      = "taskit"
	debugAppName = "taskit_debug"
	saveFileName = "save.json"
	logFileName  = "taskit.log"
)

// Config keeps runtime settings for the CLI.
type Config struct {
	DataDir       string `validate:"required"`
	SaveFile      string `validate:"required"`
	LogFile       string `validate:"required"`
	LogMaxSizeMB  int    `validate:"gte=1,lte=1024"`
	LogMaxBackups int    `validate:"gte=0"`
	Debug         bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DataDir:       strings.TrimSpace(os.Getenv("TASKIT_DATA_DIR")),
		SaveFile:      strings.TrimSpace(os.Getenv("TASKIT_SAVE_FILE")),
		LogFile:       strings.TrimSpace(os.Getenv("TASKIT_LOG_FILE")),
		LogMaxSizeMB:  parseInt(os.Getenv("TASKIT_LOG_MAX_SIZE_MB"), 5),
		LogMaxBackups: parseInt(os.Getenv("TASKIT_LOG_MAX_BACKUPS"), 3),
		Debug:         parseBool(os.Getenv("TASKIT_DEBUG")),
	}

	if cfg.DataDir == "" {
		base, err := dataHome()
		if err != nil {
			return cfg, fmt.Errorf("locate data dir: %w", err)
		}
		name := appName
		if cfg.Debug {
			name = debugAppName
		}
		cfg.DataDir = filepath.Join(base, name)
	}
	if cfg.SaveFile == "" {
		cfg.SaveFile = filepath.Join(cfg.DataDir, saveFileName)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UseSaveFile points the config at path. The data directory becomes the
// file's directory, and a log file left at its default follows it.
func (c *Config) UseSaveFile(path string) {
	if c.LogFile == filepath.Join(c.DataDir, logFileName) {
		c.LogFile = filepath.Join(filepath.Dir(path), logFileName)
	}
	c.SaveFile = path
	c.DataDir = filepath.Dir(path)
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (c Config) EnsureDataDir() (created bool, err error) {
	if _, err := os.Stat(c.DataDir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return false, fmt.Errorf("create data dir %q: %w", c.DataDir, err)
	}
	return true, nil
}

// dataHome is the per-user application data root: XDG_DATA_HOME or
// ~/.local/share on Linux and BSDs, the user config dir elsewhere
// (~/Library/Application Support, %AppData%).
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin", "windows", "ios", "plan9":
		return os.UserConfigDir()
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}

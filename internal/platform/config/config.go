package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "PULSECUE"
	configName = "pulsecue"

	defaultTickInterval = time.Second
	defaultLogLevel     = "info"
)

// Orphan policies decide what restore does with a snapshot whose routine no
// longer exists.
const (
	OrphanKeep  = "keep"
	OrphanClear = "clear"
)

type Config struct {
	DataDir      string
	DBPath       string
	SnapshotPath string
	SettingsPath string
	LogPath      string

	LogLevel      string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	TickInterval time.Duration
	AutoAdvance  bool
	OrphanPolicy string
}

// New returns the defaults for dataDir without reading any file or env.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "pulsecue.db"),
		SnapshotPath: filepath.Join(dataDir, "runner-state.json"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
		LogPath:      filepath.Join(dataDir, "logs", "pulsecue.log"),
		LogLevel:     defaultLogLevel,
		TickInterval: defaultTickInterval,
		OrphanPolicy: OrphanClear,
	}, nil
}

// Load layers <dataDir>/pulsecue.yaml and PULSECUE_* environment variables
// (a local .env is loaded first when present) over the defaults.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := loadDotEnvIfPresent(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_max_size_mb", 0)
	v.SetDefault("log_max_backups", 0)
	v.SetDefault("log_max_age_days", 0)
	v.SetDefault("log_compress", false)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("auto_advance", false)
	v.SetDefault("orphan_policy", cfg.OrphanPolicy)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.LogLevel = strings.TrimSpace(v.GetString("log_level"))
	cfg.LogMaxSizeMB = v.GetInt("log_max_size_mb")
	cfg.LogMaxBackups = v.GetInt("log_max_backups")
	cfg.LogMaxAgeDays = v.GetInt("log_max_age_days")
	cfg.LogCompress = v.GetBool("log_compress")
	cfg.TickInterval = v.GetDuration("tick_interval")
	cfg.AutoAdvance = v.GetBool("auto_advance")
	cfg.OrphanPolicy = strings.ToLower(strings.TrimSpace(v.GetString("orphan_policy")))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickInterval <= 0 || c.TickInterval > time.Second {
		return fmt.Errorf("tick_interval must be in (0s, 1s], got %s", c.TickInterval)
	}
	switch c.OrphanPolicy {
	case OrphanKeep, OrphanClear:
	default:
		return fmt.Errorf("orphan_policy must be %q or %q, got %q", OrphanKeep, OrphanClear, c.OrphanPolicy)
	}
	return nil
}

// DefaultDataDir is ~/.pulsecue, or ./.pulsecue when the home directory is
// unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".pulsecue"
	}
	return filepath.Join(home, ".pulsecue")
}

func loadDotEnvIfPresent(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return nil
	}
	return err
}

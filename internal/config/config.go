package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskboard.db"
	DefaultStorageKey     = "task-storage"
	DefaultAddr           = ":8080"
	DefaultFeedSize       = 50

	appName = "taskboard"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Storage struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Key     string `toml:"key"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Alerts struct {
	FeedSize int `toml:"feed_size"`
}

type Config struct {
	Locale  string  `toml:"locale"`
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
	Alerts  Alerts  `toml:"alerts"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/taskboard/config.toml, or the
// platform equivalent.
func ResolveConfigPath() string {
	return filepath.Join(configDir(), DefaultConfigFileName)
}

// DataDir is where the database lives unless storage.path says otherwise.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Missing keys keep their default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: "en",
		Storage: Storage{
			Backend: BackendSQLite,
			Path:    filepath.Join(DataDir(), DefaultDBName),
			Key:     DefaultStorageKey,
		},
		Server: Server{Addr: DefaultAddr},
		Log:    Log{Level: "info", Format: "text"},
		Alerts: Alerts{FeedSize: DefaultFeedSize},
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Storage.Key == "" {
		c.Storage.Key = def.Storage.Key
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.Alerts.FeedSize == 0 {
		c.Alerts.FeedSize = def.Alerts.FeedSize
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be %q, %q or %q, got %q",
			BackendSQLite, BackendFile, BackendMemory, c.Storage.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	if c.Alerts.FeedSize < 0 {
		return fmt.Errorf("alerts.feed_size must not be negative, got %d", c.Alerts.FeedSize)
	}
	return nil
}

// LocaleTag parses Locale as a BCP 47 tag.
func (c Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

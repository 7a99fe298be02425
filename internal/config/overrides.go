package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// TASKBOARD_STORAGE_BACKEND for storage.backend.
const EnvPrefix = "TASKBOARD"

// Keys that can be overridden from the environment or flags.
var overrideKeys = []string{
	"storage.backend",
	"storage.path",
	"storage.key",
	"server.addr",
	"log.level",
	"log.format",
	"locale",
	"alerts.feed_size",
}

// NewViper returns a viper instance bound to the TASKBOARD_* environment.
// Flags are bound by the caller with BindPFlag.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range overrideKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// ApplyOverrides copies every key set in v over cfg. Precedence is
// flags, then environment, then the config file.
func ApplyOverrides(cfg Config, v *viper.Viper) (Config, error) {
	if v.IsSet("storage.backend") {
		cfg.Storage.Backend = v.GetString("storage.backend")
	}
	if v.IsSet("storage.path") {
		cfg.Storage.Path = v.GetString("storage.path")
	}
	if v.IsSet("storage.key") {
		cfg.Storage.Key = v.GetString("storage.key")
	}
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	}
	if v.IsSet("log.format") {
		cfg.Log.Format = strings.ToLower(v.GetString("log.format"))
	}
	if v.IsSet("locale") {
		cfg.Locale = v.GetString("locale")
	}
	if v.IsSet("alerts.feed_size") {
		cfg.Alerts.FeedSize = v.GetInt("alerts.feed_size")
	}
	return cfg, cfg.Validate()
}

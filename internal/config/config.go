// Package config loads the archiver's environment-variable configuration
// via viper, the same library jinterlante1206-AleutianLocal's CLI uses to
// load its own settings.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully-resolved configuration the archiver runs with.
type Config struct {
	// TelegramAPIToken authenticates the bot with the Telegram Bot API.
	TelegramAPIToken string

	// DBPath is where the embedded badger store lives on disk.
	DBPath string

	// BindAddr is the HTTP render layer's listen address.
	BindAddr string

	// RestartDelay is how long the supervisor waits before respawning a
	// task that returned or panicked.
	RestartDelay time.Duration

	// MediaSizeCeiling is the declared-size cutoff above which an
	// attachment is dropped rather than downloaded.
	MediaSizeCeiling int64
}

const (
	keyTelegramAPIToken = "telegram_api_token"
	keyDBPath           = "db_path"
	keyBindAddr         = "bind_addr"
	keyRestartDelayMS   = "restart_delay_ms"
	keyMediaCeiling     = "media_size_ceiling"
)

// Load reads configuration from the process environment, applying
// spec.md's defaults for everything but the token, which has none.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHATVAULT")
	v.AutomaticEnv()

	v.SetDefault(keyDBPath, "./db")
	v.SetDefault(keyBindAddr, "0.0.0.0:12525")
	v.SetDefault(keyRestartDelayMS, 2000)
	v.SetDefault(keyMediaCeiling, 50*1024*1024)

	// The Telegram token is read under its own historical env var name,
	// not the CHATVAULT_ prefix, matching how Telegram bot deployments
	// conventionally name it.
	if err := v.BindEnv(keyTelegramAPIToken, "TELEGRAM_API_TOKEN"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv(keyDBPath, "CHATVAULT_DB_PATH"); err != nil {
		return Config{}, err
	}

	token := v.GetString(keyTelegramAPIToken)
	if token == "" {
		return Config{}, fmt.Errorf("config: TELEGRAM_API_TOKEN is required")
	}

	return Config{
		TelegramAPIToken: token,
		DBPath:           v.GetString(keyDBPath),
		BindAddr:         v.GetString(keyBindAddr),
		RestartDelay:     time.Duration(v.GetInt64(keyRestartDelayMS)) * time.Millisecond,
		MediaSizeCeiling: v.GetInt64(keyMediaCeiling),
	}, nil
}

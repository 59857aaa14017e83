package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, e.g. LUMEN_SERVER_PORT.
const EnvPrefix = "LUMEN"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching for config.yaml in the working directory.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.backend", "postgres")
	v.SetDefault("auth.token_lifetime_minutes", 60*24)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model_name", "gemini-1.5-flash")
	v.SetDefault("speech.model_id", "eleven_monolingual_v1")
	v.SetDefault("speech.base_url", "https://api.elevenlabs.io")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.local_dir", "./media")
	v.SetDefault("media.public_base_url", "http://localhost:8080/media")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("generation.auto_media", false)
	v.SetDefault("generation.worker_count", 2)
	v.SetDefault("generation.queue_size", 100)
	v.SetDefault("generation.lesson_failure_policy", "soft")
	v.SetDefault("generation.audio_failure_policy", "soft")
	v.SetDefault("generation.image_failure_policy", "loud")
}

// bindEnvs registers every key so AutomaticEnv can see variables for keys
// that have no default and are absent from the config file.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"server.port", "server.log_level",
		"database.backend", "database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes",
		"llm.provider", "llm.gemini_api_key", "llm.openai_api_key", "llm.openai_base_url", "llm.model_name",
		"speech.elevenlabs_api_key", "speech.voice_id", "speech.model_id", "speech.base_url",
		"media.backend", "media.local_dir", "media.public_base_url", "media.gcs_bucket", "media.gcs_cdn_domain", "media.gcs_credentials_file",
		"cache.redis_url", "cache.ttl_seconds",
		"generation.auto_media", "generation.worker_count", "generation.queue_size",
		"generation.lesson_failure_policy", "generation.audio_failure_policy", "generation.image_failure_policy",
	}
	for _, key := range keys {
		// BindEnv only errors when called without a key.
		_ = v.BindEnv(key)
	}
}

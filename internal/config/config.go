package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Media      MediaConfig      `mapstructure:"media"      validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the record store backend.
// The memory backend keeps everything in process and is meant for local runs.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres memory"`
	URL     string `mapstructure:"url"     validate:"required_if=Backend postgres"`
}

// AuthConfig contains the settings for teacher bearer tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all content generation settings.
type LLMConfig struct {
	Provider      string `mapstructure:"provider"        validate:"required,oneof=gemini openai"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	ModelName     string `mapstructure:"model_name"      validate:"required"`
}

// SpeechConfig contains the ElevenLabs text-to-speech settings.
type SpeechConfig struct {
	ElevenLabsAPIKey string `mapstructure:"elevenlabs_api_key"`
	VoiceID          string `mapstructure:"voice_id"`
	ModelID          string `mapstructure:"model_id"`
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
}

// MediaConfig selects where synthesized audio is stored.
type MediaConfig struct {
	Backend       string `mapstructure:"backend"         validate:"required,oneof=local gcs"`
	LocalDir      string `mapstructure:"local_dir"       validate:"required_if=Backend local"`
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required_if=Backend local"`
	GCSBucket     string `mapstructure:"gcs_bucket"      validate:"required_if=Backend gcs"`
	GCSCDNDomain  string `mapstructure:"gcs_cdn_domain"`
	// GCSCredentialsFile is optional; application default credentials are used when empty.
	GCSCredentialsFile string `mapstructure:"gcs_credentials_file"`
}

// CacheConfig configures the optional lesson materials cache.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// GenerationConfig tunes the orchestrator and its background media workers.
type GenerationConfig struct {
	AutoMedia   bool `mapstructure:"auto_media"`
	WorkerCount int  `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int  `mapstructure:"queue_size"   validate:"required,gt=0"`

	// Failure policies of the generation operations, "soft" or "loud".
	LessonFailurePolicy string `mapstructure:"lesson_failure_policy" validate:"required,oneof=soft loud"`
	AudioFailurePolicy  string `mapstructure:"audio_failure_policy"  validate:"required,oneof=soft loud"`
	ImageFailurePolicy  string `mapstructure:"image_failure_policy"  validate:"required,oneof=soft loud"`
}

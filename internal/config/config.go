package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM gateway related settings.
// OpenAIAPIKey authenticates against the chat-completion endpoint used for
// non-Gemini models. BaseURL may point at any OpenAI-compatible endpoint;
// when empty the SDK default is used. GeminiAPIKey is only required when
// requests route to a gemini-* model.
type LLMConfig struct {
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	BaseURL      string `mapstructure:"base_url"       validate:"omitempty,url"`

	// DefaultModel is used when a request does not name a model.
	DefaultModel string `mapstructure:"default_model" validate:"required"`

	// RequestsPerMinute caps outbound gateway calls. Zero disables the limiter.
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
}

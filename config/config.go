package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisTokenDB  int    `mapstructure:"REDIS_TOKEN_DB"`

	// Generative AI source.
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string `mapstructure:"GEMINI_MODEL"`
	AIDefaultCity     string `mapstructure:"AI_DEFAULT_CITY"`
	AITimeoutSeconds  int    `mapstructure:"AI_TIMEOUT_SECONDS"`
	AIKnowledgeCutoff string `mapstructure:"AI_KNOWLEDGE_CUTOFF"`

	// Eventbrite.
	EventbriteToken      string `mapstructure:"EVENTBRITE_TOKEN"`
	EventbriteBaseURL    string `mapstructure:"EVENTBRITE_BASE_URL"`
	EventsTimeoutSeconds int    `mapstructure:"EVENTS_TIMEOUT_SECONDS"`

	// Google Maps API Key.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Email.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom      string `mapstructure:"EMAIL_FROM"`
	EmailFromName  string `mapstructure:"EMAIL_FROM_NAME"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	GeolocationEnabled bool `mapstructure:"GEOLOCATION_ENABLED"`
}

// LoadConfig reads config.yaml (from "." or "./config") overlaid with environment variables.
func LoadConfig() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "musa")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL_HOURS", 30*24)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_TOKEN_DB", 0)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("AI_DEFAULT_CITY", "Roma")
	v.SetDefault("AI_TIMEOUT_SECONDS", 20)
	v.SetDefault("AI_KNOWLEDGE_CUTOFF", "2023")
	v.SetDefault("EVENTBRITE_TOKEN", "")
	v.SetDefault("EVENTBRITE_BASE_URL", "https://www.eventbriteapi.com/v3/events/search/")
	v.SetDefault("EVENTS_TIMEOUT_SECONDS", 10)
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@musa.app")
	v.SetDefault("EMAIL_FROM_NAME", "MUSA")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("GEOLOCATION_ENABLED", false)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// JWTTTL is the lifetime of issued session tokens.
func (c *Config) JWTTTL() time.Duration {
	if c.JWTTTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c *Config) AITimeout() time.Duration {
	if c.AITimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

func (c *Config) EventsTimeout() time.Duration {
	if c.EventsTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.EventsTimeoutSeconds) * time.Second
}

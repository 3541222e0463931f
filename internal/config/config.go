package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/oggyb/buka-sms/internal/sms"
)

type Config struct {
	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	API struct {
		Host string
		Port string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Buka Buka

	Sender struct {
		RateQPS        float64
		RateBurst      int
		SendTimeout    time.Duration
		IdempotencyTTL time.Duration
	}
}

// Buka holds the provider settings as read from the environment. Any field
// may be empty; sms.NewClient decides what is required.
type Buka struct {
	AppID     string
	AppSecret string
	APIKey    string
	SenderID  string
	BaseURL   string
}

// LoadEnvFile loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnvFile() {
	_ = godotenv.Load()
}

func New() *Config {
	LoadEnvFile()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "buka-sms")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Buka provider
	cfg.Buka = BukaFromEnv()

	// Outbound sending
	cfg.Sender.RateQPS = getFloat("SMS_RATE_QPS", 10)
	cfg.Sender.RateBurst = getInt("SMS_RATE_BURST", 10)
	cfg.Sender.SendTimeout = getDuration("SMS_SEND_TIMEOUT", 10*time.Second)
	cfg.Sender.IdempotencyTTL = getDuration("SMS_IDEMPOTENCY_TTL", 24*time.Hour)

	return cfg
}

// BukaFromEnv reads only the BUKA_* variables.
func BukaFromEnv() Buka {
	return Buka{
		AppID:     getEnv("BUKA_APP_ID", ""),
		AppSecret: getEnv("BUKA_APP_SECRET", ""),
		APIKey:    getEnv("BUKA_API_KEY", ""),
		SenderID:  getEnv("BUKA_SENDER_ID", ""),
		BaseURL:   getEnv("BUKA_BASE_URL", sms.DefaultBaseURL),
	}
}

// Override returns b with every non-empty field of explicit applied on top.
func (b Buka) Override(explicit Buka) Buka {
	if explicit.AppID != "" {
		b.AppID = explicit.AppID
	}
	if explicit.AppSecret != "" {
		b.AppSecret = explicit.AppSecret
	}
	if explicit.APIKey != "" {
		b.APIKey = explicit.APIKey
	}
	if explicit.SenderID != "" {
		b.SenderID = explicit.SenderID
	}
	if explicit.BaseURL != "" {
		b.BaseURL = explicit.BaseURL
	}
	return b
}

// SMS converts b into the client configuration.
func (b Buka) SMS() sms.Config {
	return sms.Config{
		AppID:     b.AppID,
		AppSecret: b.AppSecret,
		APIKey:    b.APIKey,
		SenderID:  b.SenderID,
		BaseURL:   b.BaseURL,
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.API.Host, c.API.Port)
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

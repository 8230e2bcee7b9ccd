package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Marketplace
	Marketplace  string // e.g. "amazon.co.za"
	MySellerName string // own storefront name, used for win/lose classification

	// Scraping behavior
	RespectRobots    bool
	DelayProfile     string // "cautious", "normal", "aggressive"
	RatePerSecond    float64
	RateBurst        int
	MaxConcurrent    int
	HeadlessFallback bool
	LauncherURL      string // optional remote browser launcher
	ProxyURLs        []string

	// Storage
	DatabasePath string

	// Scheduler
	RefreshInterval time.Duration

	// Alerts
	TelegramBotToken string
	TelegramChatID   int64
	AlertLosing      bool
	AlertWinning     bool
	AlertAmazon      bool

	// MCP HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Marketplace:     "amazon.co.za",
		RespectRobots:   true,
		DelayProfile:    "normal",
		RatePerSecond:   0.5,
		RateBurst:       2,
		MaxConcurrent:   3,
		DatabasePath:    "buybox_tracker.db",
		RefreshInterval: 6 * time.Hour,
		AlertLosing:     true,
		AlertWinning:    true,
		AlertAmazon:     true,
		HTTPPort:        "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("BUYBOX_MARKETPLACE"); v != "" {
		c.Marketplace = v
	}
	if v := os.Getenv("BUYBOX_MY_SELLER_NAME"); v != "" {
		c.MySellerName = v
	}
	if v := os.Getenv("BUYBOX_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("BUYBOX_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("BUYBOX_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("BUYBOX_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("BUYBOX_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("BUYBOX_HEADLESS_FALLBACK"); v == "true" {
		c.HeadlessFallback = true
	}
	if v := os.Getenv("BUYBOX_LAUNCHER_URL"); v != "" {
		c.LauncherURL = v
	}
	if v := os.Getenv("BUYBOX_PROXY_URL"); v != "" {
		c.ProxyURLs = append(c.ProxyURLs, v)
	}
	if v := os.Getenv("BUYBOX_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("BUYBOX_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RefreshInterval = d
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TelegramChatID = id
		}
	}
	c.AlertLosing = boolEnv("ALERT_LOSING", c.AlertLosing)
	c.AlertWinning = boolEnv("ALERT_WINNING", c.AlertWinning)
	c.AlertAmazon = boolEnv("ALERT_AMAZON", c.AlertAmazon)
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("BUYBOX_API_KEY"); v != "" {
		c.APIKey = v
	}
}

func boolEnv(key string, def bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "amazon.co.za", cfg.Marketplace)
	assert.Equal(t, "normal", cfg.DelayProfile)
	assert.True(t, cfg.RespectRobots)
	assert.False(t, cfg.HeadlessFallback)
	assert.Equal(t, "buybox_tracker.db", cfg.DatabasePath)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.True(t, cfg.AlertLosing)
	assert.True(t, cfg.AlertWinning)
	assert.True(t, cfg.AlertAmazon)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("BUYBOX_MARKETPLACE", "amazon.co.uk")
	t.Setenv("BUYBOX_MY_SELLER_NAME", "Bonolo Online")
	t.Setenv("BUYBOX_DELAY_PROFILE", "cautious")
	t.Setenv("BUYBOX_RESPECT_ROBOTS", "false")
	t.Setenv("BUYBOX_HEADLESS_FALLBACK", "true")
	t.Setenv("BUYBOX_DB_PATH", "/tmp/test.db")
	t.Setenv("BUYBOX_REFRESH_INTERVAL", "30m")
	t.Setenv("BUYBOX_RATE_PER_SECOND", "2.5")
	t.Setenv("BUYBOX_MAX_CONCURRENT", "8")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("ALERT_LOSING", "false")
	t.Setenv("PORT", "9090")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "amazon.co.uk", cfg.Marketplace)
	assert.Equal(t, "Bonolo Online", cfg.MySellerName)
	assert.Equal(t, "cautious", cfg.DelayProfile)
	assert.False(t, cfg.RespectRobots)
	assert.True(t, cfg.HeadlessFallback)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.InDelta(t, 2.5, cfg.RatePerSecond, 0.001)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
	assert.False(t, cfg.AlertLosing)
	assert.True(t, cfg.AlertWinning)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoadFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("BUYBOX_REFRESH_INTERVAL", "not-a-duration")
	t.Setenv("BUYBOX_RATE_PER_SECOND", "abc")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.InDelta(t, 0.5, cfg.RatePerSecond, 0.001)
	assert.Equal(t, int64(0), cfg.TelegramChatID)
}

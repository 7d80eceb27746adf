package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("RECLAIM_ADDR", "")
	t.Setenv("RECLAIM_POLL_INTERVAL", "")
	t.Setenv("RECLAIM_OCR_LANG", "")
	t.Setenv("RECLAIM_OCR_PSM_MODES", "")
	t.Setenv("RECLAIM_WATCH_DISABLED", "")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, []int{3, 6, 11, 12}, cfg.OCRPSMModes)
	assert.False(t, cfg.WatchDisabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RECLAIM_ADDR", ":9999")
	t.Setenv("RECLAIM_POLL_INTERVAL", "5s")
	t.Setenv("RECLAIM_OCR_LANG", "swa")
	t.Setenv("RECLAIM_OCR_PSM_MODES", "6, 11")
	t.Setenv("RECLAIM_WATCH_DISABLED", "true")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "swa", cfg.OCRLanguage)
	assert.Equal(t, []int{6, 11}, cfg.OCRPSMModes)
	assert.True(t, cfg.WatchDisabled)
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("RECLAIM_POLL_INTERVAL", "not-a-duration")
	t.Setenv("RECLAIM_OCR_PSM_MODES", "not,numbers")

	cfg := FromEnv()
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, []int{3, 6, 11, 12}, cfg.OCRPSMModes)
}

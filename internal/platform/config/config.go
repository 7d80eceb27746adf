package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	PollInterval  time.Duration
	OCRLanguage   string
	OCRPSMModes   []int
	WatchDisabled bool
}

// DefaultPollInterval is the fallback re-check period for the match watcher.
// Kept configurable so the polling placeholder never hardcodes a delay in
// core logic.
var DefaultPollInterval = 30 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("RECLAIM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	interval := DefaultPollInterval
	if s := os.Getenv("RECLAIM_POLL_INTERVAL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			interval = d
		}
	}

	lang := os.Getenv("RECLAIM_OCR_LANG")
	if lang == "" {
		lang = "eng"
	}

	return Server{
		Addr:          addr,
		PollInterval:  interval,
		OCRLanguage:   lang,
		OCRPSMModes:   psmModesFromEnv(),
		WatchDisabled: os.Getenv("RECLAIM_WATCH_DISABLED") == "true",
	}
}

// psmModesFromEnv parses RECLAIM_OCR_PSM_MODES as a comma-separated list of
// page segmentation modes. Defaults match the multi-pass recognition setup.
func psmModesFromEnv() []int {
	raw := os.Getenv("RECLAIM_OCR_PSM_MODES")
	if raw == "" {
		return []int{3, 6, 11, 12}
	}
	var modes []int
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			modes = append(modes, n)
		}
	}
	if len(modes) == 0 {
		return []int{3, 6, 11, 12}
	}
	return modes
}

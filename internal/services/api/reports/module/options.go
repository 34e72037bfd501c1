package module

import (
	"time"

	"reportgate/internal/platform/config"
)

// Options controls report storage wiring
type Options struct {
	// Storage client
	BaseURL    string
	ServiceKey string
	UserAgent  string
	Timeout    time.Duration

	AudioBucket string
	VideoBucket string
}

// FromConfig reads STORAGE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("STORAGE_")
	return Options{
		BaseURL:     sc.MayString("BASE_URL", ""),
		ServiceKey:  sc.MayString("SERVICE_KEY", ""),
		UserAgent:   sc.MayString("UA", "reportgate-storage"),
		Timeout:     sc.MayDuration("TIMEOUT", 10*time.Second),
		AudioBucket: sc.MayString("AUDIO_BUCKET", "report-audio"),
		VideoBucket: sc.MayString("VIDEO_BUCKET", "report-video"),
	}
}

package googlenews

import "time"

// Config tunes the decoder. Zero values are not meaningful; start from
// DefaultConfig or ConfigFromMap.
type Config struct {
	// Enabled gates decoder construction entirely. Callers skip
	// building a Decoder when false.
	Enabled bool

	// RequestInterval paces retries and batch decodes.
	RequestInterval time.Duration

	// RequestTimeout bounds a single decode call.
	RequestTimeout time.Duration

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
}

// DefaultConfig returns the documented decoder defaults: disabled,
// 1s interval, 10s timeout, 3 retries.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		RequestInterval: 1 * time.Second,
		RequestTimeout:  10 * time.Second,
		MaxRetries:      3,
	}
}

// ConfigFromMap resolves decoder settings from a flat settings mapping.
// Recognized keys: decode_enabled, request_interval (seconds),
// request_timeout (seconds), max_retries. Missing or mistyped values
// fall back to the defaults.
func ConfigFromMap(settings map[string]any) Config {
	cfg := DefaultConfig()
	if v, ok := boolSetting(settings, "decode_enabled"); ok {
		cfg.Enabled = v
	}
	if v, ok := intSetting(settings, "request_interval"); ok {
		cfg.RequestInterval = time.Duration(v) * time.Second
	}
	if v, ok := intSetting(settings, "request_timeout"); ok {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v, ok := intSetting(settings, "max_retries"); ok {
		cfg.MaxRetries = v
	}
	return cfg
}

func boolSetting(settings map[string]any, key string) (bool, bool) {
	v, ok := settings[key].(bool)
	return v, ok
}

func intSetting(settings map[string]any, key string) (int, bool) {
	switch v := settings[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

package config

const (
	DefaultPrompt   = "> "
	DefaultBaud     = 115200
	DefaultLogLevel = "warn"
)

// Normalize fills in defaults for anything left unset.
// It must be called before Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Serial.Device != "" && cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = DefaultBaud
	}
}

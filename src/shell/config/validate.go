package config

import (
	"fmt"
	"unicode/utf8"

	"picon/src/lib/trust"
)

// MaxPrompt bounds the prompt so one write of it stays well under a line.
const MaxPrompt = 64

// Validate checks a normalized configuration. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	if !utf8.ValidString(cfg.Prompt) {
		return fmt.Errorf("prompt: must be valid UTF-8")
	}
	if len(cfg.Prompt) > MaxPrompt {
		return fmt.Errorf("prompt: longer than %d bytes", MaxPrompt)
	}
	for i := 0; i < len(cfg.Prompt); i++ {
		if cfg.Prompt[i] == '\n' || cfg.Prompt[i] == '\r' {
			return fmt.Errorf("prompt: must not contain line breaks")
		}
	}

	if cfg.ReadTimeoutMs < 0 {
		return fmt.Errorf("read_timeout_ms: must be >= 0, got %d", cfg.ReadTimeoutMs)
	}

	if _, err := trust.LevelUpTo(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %v", err)
	}

	if cfg.Serial.Device != "" {
		switch {
		case cfg.Serial.Baud <= 0:
			return fmt.Errorf("serial.baud: must be > 0, got %d", cfg.Serial.Baud)
		case cfg.Serial.Baud > 4_000_000:
			return fmt.Errorf("serial.baud: %d is beyond any mini UART divisor", cfg.Serial.Baud)
		}
	} else if cfg.Serial.Baud != 0 {
		return fmt.Errorf("serial.baud: set but serial.device is empty")
	}

	return nil
}

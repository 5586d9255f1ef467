package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// config is the resolved fpctl configuration. Flags override file
// values, file values override defaults.
type config struct {
	Port        string
	BaudRate    int
	DatasetDir  string
	ReadTimeout time.Duration
	MaxAttempts int
	RetryDelay  time.Duration

	// MatchThreshold is the minimum confidence score verify accepts on
	// top of the sensor's own match judgement. Zero trusts the sensor.
	MatchThreshold uint16
}

type fileConfig struct {
	Port         string `toml:"port"`
	BaudRate     int    `toml:"baud_rate"`
	DatasetDir   string `toml:"dataset_dir"`
	ReadTimeout  string `toml:"read_timeout"`
	MaxAttempts  int    `toml:"max_attempts"`
	RetryDelay     string `toml:"retry_delay"`
	RetryDelayMS   int64  `toml:"retry_delay_ms"`
	MatchThreshold int    `toml:"match_threshold"`
}

func defaultConfig() config {
	return config{
		Port:        "/dev/ttyUSB0",
		BaudRate:    57600,
		DatasetDir:  "dataset",
		ReadTimeout: 2 * time.Second,
		MaxAttempts: 5,
		RetryDelay:  500 * time.Millisecond,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load fpctl config: %w", err)
	}

	if meta.IsDefined("port") {
		port := strings.TrimSpace(raw.Port)
		if port != "" {
			cfg.Port = port
		}
	}

	if meta.IsDefined("baud_rate") {
		if raw.BaudRate <= 0 {
			return config{}, fmt.Errorf("baud_rate must be positive, got %d", raw.BaudRate)
		}
		cfg.BaudRate = raw.BaudRate
	}

	if meta.IsDefined("dataset_dir") {
		dir := strings.TrimSpace(raw.DatasetDir)
		if dir != "" {
			cfg.DatasetDir = dir
		}
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}

	if meta.IsDefined("max_attempts") {
		if raw.MaxAttempts <= 0 {
			return config{}, fmt.Errorf("max_attempts must be positive, got %d", raw.MaxAttempts)
		}
		cfg.MaxAttempts = raw.MaxAttempts
	}

	if meta.IsDefined("retry_delay") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryDelay))
		if err != nil {
			return config{}, fmt.Errorf("parse retry_delay: %w", err)
		}
		cfg.RetryDelay = d
	}

	if meta.IsDefined("retry_delay_ms") {
		cfg.RetryDelay = time.Duration(raw.RetryDelayMS) * time.Millisecond
	}

	if meta.IsDefined("match_threshold") {
		if raw.MatchThreshold < 0 || raw.MatchThreshold > 0xFFFF {
			return config{}, fmt.Errorf("match_threshold out of range: %d", raw.MatchThreshold)
		}
		cfg.MatchThreshold = uint16(raw.MatchThreshold)
	}

	return cfg, nil
}

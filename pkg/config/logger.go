package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger contains the logger configuration shared by cmd/cachebench and any
// embedder of this module's caches.
type Logger struct {
	LogEncoding  string `yaml:"LogEncoding"`
	LogLevel     string `yaml:"LogLevel"`
	LogPath      string `yaml:"LogPath"`
	LogTimestamp *bool  `yaml:"LogTimestamp,omitempty"`
}

// Validate returns an error if Logger configuration is not valid.
func (l Logger) Validate() error {
	if len(l.LogEncoding) > 0 && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	return nil
}

// Build constructs a *zap.Logger from this configuration, defaulting to a
// console-encoded, info-level development logger when fields are left
// zero-valued.
func (l Logger) Build() (*zap.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	cc := zap.NewDevelopmentConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	if l.LogEncoding != "" {
		cc.Encoding = l.LogEncoding
	} else {
		cc.Encoding = "console"
	}
	if l.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(l.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LogLevel: %w", err)
		}
		cc.Level = zap.NewAtomicLevelAt(lvl)
	} else {
		cc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if l.LogPath != "" {
		cc.OutputPaths = []string{l.LogPath}
	}
	log, err := cc.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("module", "consensuscache")), nil
}

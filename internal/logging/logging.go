// Package logging builds the application logger. The TUI owns stdout and
// stderr, so logs go to a file or nowhere; writing to the terminal would
// corrupt the rendered frames.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jclamy/kubedeck/internal/config"
)

// New returns a logger writing to the file named by cfg.Path, or by the
// KUBEDECK_LOG environment variable when the config leaves it empty.
// With neither set, logging is disabled and a no-op logger is returned.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	path := cfg.Path
	if path == "" {
		path = os.Getenv("KUBEDECK_LOG")
	}
	if path == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("création du dossier de log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ouverture du fichier de log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(f),
		level,
	)
	return zap.New(core), nil
}

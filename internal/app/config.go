package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ayusman/chitram/internal/gesture"
)

// Config holds application configuration, populated from CHITRAM_*
// environment variables with sensible defaults.
type Config struct {
	// Addr is the HTTP listen address for the API server.
	Addr string `env:"CHITRAM_ADDR" envDefault:"127.0.0.1:8421"`
	// CameraID selects the capture device.
	CameraID int `env:"CHITRAM_CAMERA_ID" envDefault:"0"`
	// DataDir holds the database and saved boards. Defaults to ~/.chitram.
	DataDir string `env:"CHITRAM_DATA_DIR"`
	// ModelPath points at the gesture classifier model file.
	ModelPath string `env:"CHITRAM_MODEL_PATH"`

	// CanvasWidth and CanvasHeight set the board dimensions in pixels.
	CanvasWidth  int `env:"CHITRAM_CANVAS_WIDTH" envDefault:"1200"`
	CanvasHeight int `env:"CHITRAM_CANVAS_HEIGHT" envDefault:"800"`

	// Cooldown is the per-gesture debounce interval. When unset it
	// falls back to gesture.DefaultCooldown, or gesture.ServiceCooldown
	// in service mode.
	Cooldown time.Duration `env:"CHITRAM_COOLDOWN"`
	// ServiceMode selects the shorter service cooldown profile, for
	// deployments where a downstream consumer does its own debouncing.
	ServiceMode bool `env:"CHITRAM_SERVICE_MODE" envDefault:"false"`
	// WindowSize is the number of landmark frames fed to the classifier.
	WindowSize int `env:"CHITRAM_WINDOW_SIZE" envDefault:"4"`
	// Confidence is the classifier acceptance threshold.
	Confidence float64 `env:"CHITRAM_CONFIDENCE" envDefault:"0.7"`
	// MotionThreshold is the percent of changed pixels that counts as activity.
	MotionThreshold float64 `env:"CHITRAM_MOTION_THRESHOLD" envDefault:"0.8"`

	// MockCamera forces the synthetic camera, for machines without one.
	MockCamera bool `env:"CHITRAM_MOCK_CAMERA" envDefault:"false"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("failed to resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".chitram")
	}

	if cfg.ModelPath == "" {
		cfg.ModelPath = filepath.Join(cfg.DataDir, "gesture_model.tflite")
	}

	if cfg.Cooldown <= 0 {
		if cfg.ServiceMode {
			cfg.Cooldown = gesture.ServiceCooldown
		} else {
			cfg.Cooldown = gesture.DefaultCooldown
		}
	}

	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return cfg, fmt.Errorf("invalid canvas size %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}

	return cfg, nil
}

// DBPath returns the SQLite database path under the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "chitram.db")
}

// BoardDir returns the directory saved boards are written to.
func (c Config) BoardDir() string {
	return filepath.Join(c.DataDir, "boards")
}

package vblanklat

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duty cycle policy names accepted in configuration.
const (
	DutyEven            = "even"
	DutyEvenUntilSignal = "even_until_signal"
	DutyEvenModulo20    = "even_modulo_20"
)

// Config holds the run parameters of one capture. All fields have working
// defaults; there is no CLI surface, only an optional YAML file.
type Config struct {
	// FrameBudget is the number of frames to capture before exporting.
	FrameBudget int64 `yaml:"frame_budget"`

	// SignalFrames is how many leading frames emit an external marker.
	// Ignored when no signal channel is attached.
	SignalFrames int64 `yaml:"signal_frames"`
	// SignalDevice is the external channel's device identifier, e.g.
	// "COM3" or "/dev/ttyUSB0". Empty disables external signalling.
	SignalDevice string `yaml:"signal_device"`
	// SignalBaud is the channel's fixed baud rate.
	SignalBaud int `yaml:"signal_baud"`
	// SignalTimeoutMillis bounds one marker write-and-flush.
	SignalTimeoutMillis int64 `yaml:"signal_timeout_ms"`

	// PollIntervalMicros is slept between statistics polls. Zero keeps
	// the pure busy-wait.
	PollIntervalMicros int64 `yaml:"poll_interval_us"`

	// DutyCycle names the draw/skip policy: "even", "even_until_signal"
	// or "even_modulo_20".
	DutyCycle string `yaml:"duty_cycle"`

	// OutputPath is where the record table is written at run completion.
	OutputPath string `yaml:"output_path"`
}

// DefaultConfig returns the standard capture parameters.
func DefaultConfig() *Config {
	return &Config{
		FrameBudget:         1000,
		SignalFrames:        10,
		SignalBaud:          115200,
		SignalTimeoutMillis: 100,
		PollIntervalMicros:  0,
		DutyCycle:           DutyEven,
		OutputPath:          "vblank_records.csv",
	}
}

// Validate clamps numeric fields to safe values and rejects unknown duty
// cycle names.
func (c *Config) Validate() error {
	if c.FrameBudget <= 0 {
		c.FrameBudget = 1000
	}
	if c.SignalFrames < 0 {
		c.SignalFrames = 0
	}
	if c.SignalFrames > c.FrameBudget {
		c.SignalFrames = c.FrameBudget
	}
	if c.SignalBaud <= 0 {
		c.SignalBaud = 115200
	}
	if c.SignalTimeoutMillis < 0 {
		c.SignalTimeoutMillis = 0
	}
	if c.PollIntervalMicros < 0 {
		c.PollIntervalMicros = 0
	}
	if c.OutputPath == "" {
		c.OutputPath = "vblank_records.csv"
	}
	switch c.DutyCycle {
	case "":
		c.DutyCycle = DutyEven
	case DutyEven, DutyEvenUntilSignal, DutyEvenModulo20:
	default:
		return fmt.Errorf("unknown duty cycle %q", c.DutyCycle)
	}
	return nil
}

// Policy resolves the configured duty cycle name.
func (c *Config) Policy() DutyCycle {
	switch c.DutyCycle {
	case DutyEvenUntilSignal:
		return DrawEvenUntil(c.SignalFrames)
	case DutyEvenModulo20:
		return DrawEvenModulo(20)
	default:
		return DrawEvenFrames
	}
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMicros) * time.Microsecond
}

// SignalTimeout returns the marker timeout as a duration.
func (c *Config) SignalTimeout() time.Duration {
	return time.Duration(c.SignalTimeoutMillis) * time.Millisecond
}

// LoadConfig reads the YAML file at path. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

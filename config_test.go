package vblanklat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(1000), cfg.FrameBudget)
	assert.Equal(t, int64(10), cfg.SignalFrames)
	assert.Equal(t, 115200, cfg.SignalBaud)
	assert.Equal(t, DutyEven, cfg.DutyCycle)
	assert.Equal(t, "vblank_records.csv", cfg.OutputPath)
	assert.NoError(t, cfg.Validate())
}

func TestValidateClamps(t *testing.T) {
	cfg := &Config{
		FrameBudget:         -5,
		SignalFrames:        -1,
		SignalBaud:          0,
		SignalTimeoutMillis: -1,
		PollIntervalMicros:  -3,
	}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, int64(1000), cfg.FrameBudget)
	assert.Equal(t, int64(0), cfg.SignalFrames)
	assert.Equal(t, 115200, cfg.SignalBaud)
	assert.Equal(t, int64(0), cfg.SignalTimeoutMillis)
	assert.Equal(t, int64(0), cfg.PollIntervalMicros)
	assert.Equal(t, DutyEven, cfg.DutyCycle)
	assert.Equal(t, "vblank_records.csv", cfg.OutputPath)
}

func TestValidateClampsSignalFramesToBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameBudget = 5
	cfg.SignalFrames = 50
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, int64(5), cfg.SignalFrames)
}

func TestValidateRejectsUnknownDutyCycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DutyCycle = "random"
	assert.Error(t, cfg.Validate())
}

func TestPolicyResolution(t *testing.T) {
	cfg := DefaultConfig()

	cfg.DutyCycle = DutyEven
	policy := cfg.Policy()
	assert.True(t, policy(0))
	assert.False(t, policy(1))
	assert.True(t, policy(100))

	cfg.DutyCycle = DutyEvenUntilSignal
	cfg.SignalFrames = 4
	policy = cfg.Policy()
	assert.True(t, policy(0))
	assert.False(t, policy(1))
	assert.True(t, policy(2))
	assert.False(t, policy(4), "drawing must stop after the signal phase")
	assert.False(t, policy(6))

	cfg.DutyCycle = DutyEvenModulo20
	policy = cfg.Policy()
	assert.True(t, policy(0))
	assert.False(t, policy(19))
	assert.True(t, policy(20))
}

func TestDurationAccessors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PollIntervalMicros = 5
	cfg.SignalTimeoutMillis = 100
	assert.Equal(t, 5*time.Microsecond, cfg.PollInterval())
	assert.Equal(t, 100*time.Millisecond, cfg.SignalTimeout())
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "capture.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	content := `frame_budget: 250
signal_frames: 4
signal_device: /dev/ttyUSB0
duty_cycle: even_until_signal
output_path: run1.csv
poll_interval_us: 2
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(250), cfg.FrameBudget)
	assert.Equal(t, int64(4), cfg.SignalFrames)
	assert.Equal(t, "/dev/ttyUSB0", cfg.SignalDevice)
	assert.Equal(t, DutyEvenUntilSignal, cfg.DutyCycle)
	assert.Equal(t, "run1.csv", cfg.OutputPath)
	assert.Equal(t, 2*time.Microsecond, cfg.PollInterval())
	assert.Equal(t, 115200, cfg.SignalBaud, "unset fields keep defaults")
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("frame_budget: [oops"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("duty_cycle: sometimes"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

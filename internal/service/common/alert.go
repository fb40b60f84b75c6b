package common

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/device"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

// NewAlertActuator builds the alert actuator for the configured sound backend.
// Vibration is wired only when the termux device API is installed.
func NewAlertActuator(ctx context.Context, cfg *config.Config, w io.Writer) (*engine.Actuator, error) {
	tone, err := sound.Detect(ctx, cfg.Sound, w)
	if err != nil {
		return nil, fmt.Errorf("detect sound backend: %w", err)
	}

	var vibrator engine.Vibrator

	if device.Available() {
		vibrator = device.NewVibrator()
	} else {
		logger.Debug(ctx, "Vibration is unavailable on this device")
	}

	return engine.NewActuator(tone, vibrator), nil
}

package joystick

import (
	"time"

	"github.com/Carmen-Shannon/oxy-console/common"
	"go.uber.org/zap"
)

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*trackerImpl)

// WithMaxRadius sets the joystick's travel limit. Non-positive values are ignored.
//
// Parameters:
//   - r: the radius in the joystick's parent frame
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithMaxRadius(r float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if r > 0 {
			t.maxRadius = r
		}
	}
}

// WithCooldown sets the minimum time between two direction events. Negative values are ignored.
//
// Parameters:
//   - d: the cooldown window
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithCooldown(d time.Duration) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if d >= 0 {
			t.cooldown = d
		}
	}
}

// WithClock sets the time source used for the cooldown.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithClock(clock common.Clock) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithLogger sets the tracker's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}

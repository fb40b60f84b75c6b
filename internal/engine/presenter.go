package engine

import (
	"context"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Level classifies a user-visible notification.
type Level string

const (
	// LevelSuccess reports a completed user action.
	LevelSuccess Level = "success"
	// LevelWarning reports a degraded but non-fatal condition.
	LevelWarning Level = "warning"
	// LevelError reports a failed user action.
	LevelError Level = "error"
)

// RingingView is a read-only copy of the ringing state for presentation.
type RingingView struct {
	Ringing bool
	AlarmID string
	Label   string
	Since   time.Time
}

// Presenter receives the events the engine emits for the presentation layer.
type Presenter interface {
	RenderAlarms(snapshot *alarm.Snapshot)
	RenderRinging(view RingingView)
	Notify(level Level, message string)
}

// ClockRenderer is implemented by presenters that display the current time.
type ClockRenderer interface {
	RenderClock(now time.Time)
}

// LogPresenter writes engine events to the logger stored in ctx.
type LogPresenter struct {
	ctx context.Context //nolint:containedctx // Carries the scoped logger only.
}

// NewLogPresenter creates a presenter logging through ctx.
func NewLogPresenter(ctx context.Context) *LogPresenter {
	return &LogPresenter{ctx: ctx}
}

// RenderAlarms logs the size of a new snapshot.
func (p *LogPresenter) RenderAlarms(snapshot *alarm.Snapshot) {
	logger.DebugKV(p.ctx, "Alarm list refreshed", "count", snapshot.Len())
}

// RenderRinging logs ringing transitions.
func (p *LogPresenter) RenderRinging(view RingingView) {
	if view.Ringing {
		logger.InfoKV(p.ctx, "Alarm ringing", "alarm_id", view.AlarmID, "label", view.Label)
		return
	}

	logger.Info(p.ctx, "Alarm silent")
}

// Notify logs a notification at a matching level.
func (p *LogPresenter) Notify(level Level, message string) {
	switch level {
	case LevelError:
		logger.Error(p.ctx, message)
	case LevelWarning:
		logger.Warn(p.ctx, message)
	default:
		logger.Info(p.ctx, message)
	}
}

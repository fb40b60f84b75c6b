package server

import (
	"context"
	"fmt"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// alarmEngine is the part of the engine the service drives.
type alarmEngine interface {
	CreateAlarm(ctx context.Context, draft *domain.Draft) (string, error)
	ToggleAlarm(ctx context.Context, id string) error
	DeleteAlarm(ctx context.Context, id string) error
	Stop(ctx context.Context) error
	State() engine.RingingView
}

// service encapsulates the alarm business logic and persistence orchestration.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of alarms.
	repo repo.Repository
	// engine evaluates the catalog and owns the ringing state.
	engine alarmEngine
}

// newService creates a service backed by the provided repository and engine.
func newService(repository repo.Repository, alarmEngine alarmEngine) *service {
	return &service{
		repo:   repository,
		engine: alarmEngine,
	}
}

// ListAlarms returns the stored alarms with the ringing one marked.
func (s *service) ListAlarms(ctx context.Context) ([]domain.Alarm, error) {
	alarms, err := s.repo.ListAlarms(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to load alarms: %v", err)

		return nil, fmt.Errorf("load alarms: %w", err)
	}

	state := s.engine.State()
	if state.Ringing {
		for i := range alarms {
			alarms[i].Ringing = alarms[i].ID == state.AlarmID
		}
	}

	return alarms, nil
}

// CreateAlarm stores a new alarm and reloads the evaluated catalog.
func (s *service) CreateAlarm(ctx context.Context, actor *domain.Actor, draft *domain.Draft) (string, error) {
	id, err := s.engine.CreateAlarm(ctx, draft)
	if err != nil {
		return "", err
	}

	logger.InfoKV(ctx, "Create request served", "alarm_id", id, "time", domain.FormatClock(draft.Hour, draft.Minute),
		"actor", actor.String())

	return id, nil
}

// ToggleAlarm flips the enabled flag of an alarm.
func (s *service) ToggleAlarm(ctx context.Context, actor *domain.Actor, id string) error {
	if err := s.engine.ToggleAlarm(ctx, id); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Toggle request served", "alarm_id", id, "actor", actor.String())

	return nil
}

// DeleteAlarm removes an alarm.
func (s *service) DeleteAlarm(ctx context.Context, actor *domain.Actor, id string) error {
	if err := s.engine.DeleteAlarm(ctx, id); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Delete request served", "alarm_id", id, "actor", actor.String())

	return nil
}

// StopRinging dismisses the current server alert.
func (s *service) StopRinging(ctx context.Context, actor *domain.Actor) error {
	state := s.engine.State()

	if err := s.engine.Stop(ctx); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Stop request served", "was_ringing", state.Ringing, "alarm_id", state.AlarmID,
		"actor", actor.String())

	return nil
}

// RingingStatus reports the server ringing state.
func (s *service) RingingStatus(context.Context) (*domain.RemoteStatus, error) {
	state := s.engine.State()

	return &domain.RemoteStatus{
		Ringing: state.Ringing,
		Label:   state.Label,
		AlarmID: state.AlarmID,
	}, nil
}

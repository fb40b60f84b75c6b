package alarm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// fakeService implements the alarm Service interface for unit testing the transport.
type fakeService struct {
	alarms  []domain.Alarm
	ringing *domain.RemoteStatus
	err     error

	// lastActor is the actor passed to the latest mutation.
	lastActor *domain.Actor
	// lastDraft is the draft passed to the latest create.
	lastDraft *domain.Draft
}

func (f *fakeService) ListAlarms(context.Context) ([]domain.Alarm, error) {
	return f.alarms, f.err
}

func (f *fakeService) CreateAlarm(_ context.Context, actor *domain.Actor, draft *domain.Draft) (string, error) {
	f.lastActor, f.lastDraft = actor, draft
	if f.err != nil {
		return "", f.err
	}

	return "alarm_00000001", nil
}

func (f *fakeService) ToggleAlarm(_ context.Context, actor *domain.Actor, _ string) error {
	f.lastActor = actor

	return f.err
}

func (f *fakeService) DeleteAlarm(_ context.Context, actor *domain.Actor, _ string) error {
	f.lastActor = actor

	return f.err
}

func (f *fakeService) StopRinging(_ context.Context, actor *domain.Actor) error {
	f.lastActor = actor

	return f.err
}

func (f *fakeService) RingingStatus(context.Context) (*domain.RemoteStatus, error) {
	return f.ringing, f.err
}

// TestServer_ListAlarms converts domain alarms to wire messages.
func TestServer_ListAlarms(t *testing.T) {
	t.Parallel()

	svc := &fakeService{alarms: []domain.Alarm{
		{ID: "alarm_1", Hour: 7, Minute: 30, Label: "Wake", Enabled: true, Vibrate: true, Ringing: true},
	}}

	response, err := NewServer(svc).ListAlarms(context.Background(), new(pb.ListAlarmsRequest))
	require.NoError(t, err)
	require.Len(t, response.GetAlarms(), 1)

	got := ToDomainAlarm(response.GetAlarms()[0])
	require.Equal(t, svc.alarms[0], got)
}

// TestServer_CreateAlarm passes the actor and the draft through.
func TestServer_CreateAlarm(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	_, err := s.CreateAlarm(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	response, err := s.CreateAlarm(context.Background(), &pb.CreateAlarmRequest{
		Actor:   &pb.SystemActor{Hostname: "kitchen", Username: "oleg"},
		Hour:    6,
		Minute:  15,
		Label:   "Run",
		Vibrate: true,
	})
	require.NoError(t, err)
	require.Equal(t, "alarm_00000001", response.GetId())
	require.Equal(t, &domain.Actor{Hostname: "kitchen", Username: "oleg"}, svc.lastActor)
	require.Equal(t, &domain.Draft{Hour: 6, Minute: 15, Label: "Run", Vibrate: true}, svc.lastDraft)
}

// TestServer_ErrorMapping maps the domain taxonomy to status codes.
func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad hour", domain.ErrInvalidInput), code: codes.InvalidArgument},
		{name: "not found", err: fmt.Errorf("%w: alarm_x", domain.ErrNotFound), code: codes.NotFound},
		{name: "deadline", err: context.DeadlineExceeded, code: codes.DeadlineExceeded},
		{name: "other", err: errors.New("disk full"), code: codes.Internal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewServer(&fakeService{err: test.err})

			_, err := s.ToggleAlarm(context.Background(), &pb.ToggleAlarmRequest{Id: "alarm_x"})
			require.Equal(t, test.code, status.Code(err))
		})
	}
}

// TestServer_RequiresID rejects mutations without an alarm id.
func TestServer_RequiresID(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.ToggleAlarm(context.Background(), new(pb.ToggleAlarmRequest))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.DeleteAlarm(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_RingingStatus reports the authoritative status and stop requests.
func TestServer_RingingStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeService{ringing: &domain.RemoteStatus{Ringing: true, Label: "Wake", AlarmID: "alarm_1"}}
	s := NewServer(svc)

	response, err := s.GetRingingStatus(context.Background(), new(pb.GetRingingStatusRequest))
	require.NoError(t, err)
	require.True(t, response.GetRinging())
	require.Equal(t, "Wake", response.GetLabel())
	require.Equal(t, "alarm_1", response.GetAlarmId())

	_, err = s.StopRinging(context.Background(), &pb.StopRingingRequest{Actor: &pb.SystemActor{Username: "oleg"}})
	require.NoError(t, err)
	require.Equal(t, "oleg", svc.lastActor.Username)
}

// TestFromStatus maps status codes back to domain errors.
func TestFromStatus(t *testing.T) {
	t.Parallel()

	require.NoError(t, FromStatus(nil))
	require.ErrorIs(t, FromStatus(status.Error(codes.InvalidArgument, "bad")), domain.ErrInvalidInput)
	require.ErrorIs(t, FromStatus(status.Error(codes.NotFound, "missing")), domain.ErrNotFound)
	require.ErrorIs(t, FromStatus(status.Error(codes.Unavailable, "down")), domain.ErrTransient)
	require.ErrorIs(t, FromStatus(errors.New("boom")), domain.ErrTransient)
	require.EqualError(t, FromStatus(status.Error(codes.NotFound, "missing")), domain.ErrNotFound.Error()+": missing")
}

package alarm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	ListAlarms(ctx context.Context) ([]domain.Alarm, error)
	CreateAlarm(ctx context.Context, actor *domain.Actor, draft *domain.Draft) (string, error)
	ToggleAlarm(ctx context.Context, actor *domain.Actor, id string) error
	DeleteAlarm(ctx context.Context, actor *domain.Actor, id string) error
	StopRinging(ctx context.Context, actor *domain.Actor) error
	RingingStatus(ctx context.Context) (*domain.RemoteStatus, error)
}

// Server implements the AlarmService gRPC API.
type Server struct {
	pb.UnimplementedAlarmServiceServer

	// service provides the business logic for alarm operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ListAlarms returns every stored alarm.
func (s *Server) ListAlarms(ctx context.Context, _ *pb.ListAlarmsRequest) (*pb.ListAlarmsResponse, error) {
	alarms, err := s.service.ListAlarms(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to list alarms")
	}

	response := &pb.ListAlarmsResponse{
		Alarms: make([]*pb.Alarm, 0, len(alarms)),
	}

	for i := range alarms {
		response.Alarms = append(response.Alarms, ToProtoAlarm(&alarms[i]))
	}

	return response, nil
}

// CreateAlarm validates and stores a new alarm.
func (s *Server) CreateAlarm(ctx context.Context, req *pb.CreateAlarmRequest) (*pb.CreateAlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	draft := &domain.Draft{
		Hour:    int(req.Hour),
		Minute:  int(req.Minute),
		Label:   req.Label,
		Vibrate: req.Vibrate,
	}

	id, err := s.service.CreateAlarm(ctx, toDomainActor(req.GetActor()), draft)
	if err != nil {
		return nil, toStatus(err, "unable to create alarm")
	}

	return &pb.CreateAlarmResponse{Id: id}, nil
}

// ToggleAlarm flips the enabled flag of an alarm.
func (s *Server) ToggleAlarm(ctx context.Context, req *pb.ToggleAlarmRequest) (*pb.ToggleAlarmResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	if err := s.service.ToggleAlarm(ctx, toDomainActor(req.GetActor()), req.GetId()); err != nil {
		return nil, toStatus(err, "unable to toggle alarm")
	}

	return new(pb.ToggleAlarmResponse), nil
}

// DeleteAlarm removes an alarm.
func (s *Server) DeleteAlarm(ctx context.Context, req *pb.DeleteAlarmRequest) (*pb.DeleteAlarmResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	if err := s.service.DeleteAlarm(ctx, toDomainActor(req.GetActor()), req.GetId()); err != nil {
		return nil, toStatus(err, "unable to delete alarm")
	}

	return new(pb.DeleteAlarmResponse), nil
}

// StopRinging dismisses the server alert.
func (s *Server) StopRinging(ctx context.Context, req *pb.StopRingingRequest) (*pb.StopRingingResponse, error) {
	if err := s.service.StopRinging(ctx, toDomainActor(req.GetActor())); err != nil {
		return nil, toStatus(err, "unable to stop ringing")
	}

	return new(pb.StopRingingResponse), nil
}

// GetRingingStatus returns the authoritative ringing status.
func (s *Server) GetRingingStatus(ctx context.Context, _ *pb.GetRingingStatusRequest) (*pb.RingingStatusResponse, error) {
	ringing, err := s.service.RingingStatus(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to read ringing status")
	}

	if ringing == nil {
		return new(pb.RingingStatusResponse), nil
	}

	return &pb.RingingStatusResponse{
		Ringing: ringing.Ringing,
		Label:   ringing.Label,
		AlarmId: ringing.AlarmID,
	}, nil
}

// ToProtoAlarm converts a domain alarm to its wire form.
func ToProtoAlarm(a *domain.Alarm) *pb.Alarm {
	return &pb.Alarm{
		Id:        a.ID,
		Hour:      int32(a.Hour),   //nolint:gosec // Hour is validated to [0,23].
		Minute:    int32(a.Minute), //nolint:gosec // Minute is validated to [0,59].
		Label:     a.Label,
		Enabled:   a.Enabled,
		Vibrate:   a.Vibrate,
		SoundFile: a.SoundFile,
		Ringing:   a.Ringing,
	}
}

// ToDomainAlarm converts a wire alarm to its domain form.
func ToDomainAlarm(a *pb.Alarm) domain.Alarm {
	return domain.Alarm{
		ID:        a.GetId(),
		Hour:      int(a.Hour),
		Minute:    int(a.Minute),
		Label:     a.Label,
		Enabled:   a.Enabled,
		Vibrate:   a.Vibrate,
		SoundFile: a.SoundFile,
		Ringing:   a.Ringing,
	}
}

// toDomainActor converts a wire SystemActor to a domain Actor.
func toDomainActor(actor *pb.SystemActor) *domain.Actor {
	if actor == nil {
		return nil
	}

	return &domain.Actor{
		Hostname: actor.GetHostname(),
		Username: actor.GetUsername(),
	}
}

// toStatus maps a domain error to a gRPC status.
func toStatus(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, fallback)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, fallback)
	default:
		return status.Error(codes.Internal, fallback)
	}
}

// FromStatus maps a gRPC status error back to the domain error taxonomy.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, st.Message())
	default:
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
}

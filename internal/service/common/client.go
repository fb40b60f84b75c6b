//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// Client wraps the gRPC AlarmService client with convenience helpers.
type Client struct {
	options

	// conn is the underlying gRPC connection to the alarm server.
	conn *grpc.ClientConn
	// api is the AlarmService client stub.
	api pb.AlarmServiceClient
}

// Dial establishes a gRPC connection to the alarm server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm server: %w", err)
	}

	return &Client{
		options: newOptions(opts),
		conn:    conn,
		api:     pb.NewAlarmServiceClient(conn),
	}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// ListAlarms fetches every stored alarm.
func (c *Client) ListAlarms(ctx context.Context) ([]domain.Alarm, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.ListAlarms(callCtx, new(pb.ListAlarmsRequest))
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", api.FromStatus(err))
	}

	alarms := make([]domain.Alarm, 0, len(response.GetAlarms()))
	for _, a := range response.GetAlarms() {
		alarms = append(alarms, api.ToDomainAlarm(a))
	}

	return alarms, nil
}

// CreateAlarm stores a new alarm and returns its id.
func (c *Client) CreateAlarm(ctx context.Context, draft *domain.Draft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: empty draft", domain.ErrInvalidInput)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	request := &pb.CreateAlarmRequest{
		Actor:   c.actorMessage(),
		Hour:    int32(draft.Hour),   //nolint:gosec // Validated by the server.
		Minute:  int32(draft.Minute), //nolint:gosec // Validated by the server.
		Label:   draft.Label,
		Vibrate: draft.Vibrate,
	}

	response, err := c.api.CreateAlarm(callCtx, request)
	if err != nil {
		return "", fmt.Errorf("create alarm: %w", api.FromStatus(err))
	}

	return response.GetId(), nil
}

// ToggleAlarm flips the enabled flag of an alarm.
func (c *Client) ToggleAlarm(ctx context.Context, id string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.ToggleAlarm(callCtx, &pb.ToggleAlarmRequest{Actor: c.actorMessage(), Id: id}); err != nil {
		return fmt.Errorf("toggle alarm: %w", api.FromStatus(err))
	}

	return nil
}

// DeleteAlarm removes an alarm.
func (c *Client) DeleteAlarm(ctx context.Context, id string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.DeleteAlarm(callCtx, &pb.DeleteAlarmRequest{Actor: c.actorMessage(), Id: id}); err != nil {
		return fmt.Errorf("delete alarm: %w", api.FromStatus(err))
	}

	return nil
}

// StopRinging dismisses the server alert.
func (c *Client) StopRinging(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.StopRinging(callCtx, &pb.StopRingingRequest{Actor: c.actorMessage()}); err != nil {
		return fmt.Errorf("stop ringing: %w", api.FromStatus(err))
	}

	return nil
}

// RingingStatus fetches the authoritative ringing status.
func (c *Client) RingingStatus(ctx context.Context) (*domain.RemoteStatus, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetRingingStatus(callCtx, new(pb.GetRingingStatusRequest))
	if err != nil {
		return nil, fmt.Errorf("get ringing status: %w", api.FromStatus(err))
	}

	return &domain.RemoteStatus{
		Ringing: response.GetRinging(),
		Label:   response.GetLabel(),
		AlarmID: response.GetAlarmId(),
	}, nil
}

func (c *Client) actorMessage() *pb.SystemActor {
	if c.actor == nil {
		return nil
	}

	return &pb.SystemActor{
		Hostname: c.actor.Hostname,
		Username: c.actor.Username,
	}
}

//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	rest "github.com/oshokin/alarm-clock/internal/api/rest/alarm"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// maxResponseBytes bounds decoded response bodies.
const maxResponseBytes = 1 << 20

// HTTPClient talks to the alarm server over its JSON REST API.
type HTTPClient struct {
	options

	// baseURL is the scheme and host of the server.
	baseURL string
}

// NewHTTPClient creates a REST client for address, given as host:port or a full URL.
func NewHTTPClient(address string, opts ...Option) (*HTTPClient, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	if !strings.Contains(address, "://") {
		address = "http://" + address
	}

	if _, err := url.Parse(address); err != nil {
		return nil, fmt.Errorf("parse server address: %w", err)
	}

	return &HTTPClient{
		options: newOptions(opts),
		baseURL: strings.TrimRight(address, "/"),
	}, nil
}

// Close is a no-op; idle connections belong to the shared HTTP client.
func (c *HTTPClient) Close() error {
	return nil
}

// ListAlarms fetches every stored alarm.
func (c *HTTPClient) ListAlarms(ctx context.Context) ([]domain.Alarm, error) {
	var alarms []domain.Alarm
	if err := c.do(ctx, http.MethodGet, "/api/alarms", nil, &alarms); err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return alarms, nil
}

// CreateAlarm stores a new alarm and returns its id.
func (c *HTTPClient) CreateAlarm(ctx context.Context, draft *domain.Draft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: empty draft", domain.ErrInvalidInput)
	}

	request := rest.CreateRequest{
		Hour:    &draft.Hour,
		Minute:  &draft.Minute,
		Label:   draft.Label,
		Vibrate: &draft.Vibrate,
	}

	result, err := c.mutate(ctx, http.MethodPost, "/api/alarms", request)
	if err != nil {
		return "", fmt.Errorf("create alarm: %w", err)
	}

	return result.ID, nil
}

// ToggleAlarm flips the enabled flag of an alarm.
func (c *HTTPClient) ToggleAlarm(ctx context.Context, id string) error {
	if _, err := c.mutate(ctx, http.MethodPut, "/api/alarms/"+url.PathEscape(id)+"/toggle", nil); err != nil {
		return fmt.Errorf("toggle alarm: %w", err)
	}

	return nil
}

// DeleteAlarm removes an alarm.
func (c *HTTPClient) DeleteAlarm(ctx context.Context, id string) error {
	if _, err := c.mutate(ctx, http.MethodDelete, "/api/alarms/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}

	return nil
}

// StopRinging dismisses the server alert.
func (c *HTTPClient) StopRinging(ctx context.Context) error {
	if _, err := c.mutate(ctx, http.MethodPost, "/api/alarms/stop", nil); err != nil {
		return fmt.Errorf("stop ringing: %w", err)
	}

	return nil
}

// RingingStatus fetches the authoritative ringing status.
func (c *HTTPClient) RingingStatus(ctx context.Context) (*domain.RemoteStatus, error) {
	status := new(domain.RemoteStatus)
	if err := c.do(ctx, http.MethodGet, "/api/alarms/ringing", nil, status); err != nil {
		return nil, fmt.Errorf("get ringing status: %w", err)
	}

	return status, nil
}

// mutate performs a catalog or ringing change and checks the success flag of
// the returned result.
func (c *HTTPClient) mutate(ctx context.Context, method, path string, body any) (*rest.Result, error) {
	result := new(rest.Result)
	if err := c.do(ctx, method, path, body, result); err != nil {
		return nil, err
	}

	if !result.Success {
		message := result.Error
		if message == "" {
			message = "no error message"
		}

		return nil, fmt.Errorf("%w: server reported failure: %s", domain.ErrTransient, message)
	}

	return result, nil
}

// do performs one request. Transport, status and decode failures are mapped
// onto the domain errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.actor != nil {
		request.Header.Set(rest.HeaderActorHost, c.actor.Hostname)
		request.Header.Set(rest.HeaderActorUser, c.actor.Username)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrTransient, err)
	}

	if response.StatusCode != http.StatusOK {
		return statusError(response.StatusCode, payload)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrTransient, err)
	}

	return nil
}

// statusError maps a non-OK response to a domain error.
func statusError(code int, payload []byte) error {
	var result rest.Result

	message := http.StatusText(code)
	if json.Unmarshal(payload, &result) == nil && result.Error != "" {
		message = result.Error
	}

	kind := domain.ErrTransient

	switch code {
	case http.StatusBadRequest:
		kind = domain.ErrInvalidInput
	case http.StatusNotFound:
		kind = domain.ErrNotFound
	}

	return fmt.Errorf("%w: server responded %d: %s", kind, code, message)
}

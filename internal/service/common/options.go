//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/engine"
)

// AlarmClient is a connection to the alarm server usable as both engine collaborators.
type AlarmClient interface {
	engine.Catalog
	engine.Authority
	io.Closer
}

// Option configures client behaviour.
type Option func(*options)

// options are shared by both transports.
type options struct {
	// callTimeout is the default timeout for individual calls.
	callTimeout time.Duration
	// actor is attached to every mutating request.
	actor *domain.Actor
	// httpClient performs REST requests.
	httpClient *http.Client
}

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.callTimeout = timeout
		}
	}
}

// WithActor attaches the caller identity to mutating requests.
func WithActor(actor *domain.Actor) Option {
	return func(o *options) {
		o.actor = actor.Clone()
	}
}

// WithHTTPClient replaces the HTTP client used by the REST transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		callTimeout: config.DefaultTimeout,
		httpClient:  http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// callContext returns a context with the call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (o *options) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, o.callTimeout)
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errUnknownTransport is returned for an unsupported transport name.
	errUnknownTransport = errors.New("unknown transport")
)

// Connect opens a client for the transport selected in cfg.
func Connect(ctx context.Context, cfg *config.Config, opts ...Option) (AlarmClient, error) {
	opts = append([]Option{WithCallTimeout(cfg.Timeout)}, opts...)

	switch cfg.Transport {
	case config.TransportGRPC:
		return Dial(ctx, cfg.ServerAddress, opts...)
	case config.TransportREST, "":
		return NewHTTPClient(cfg.HTTPAddress, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownTransport, cfg.Transport)
	}
}

// Address returns the server address used by the transport selected in cfg.
func Address(cfg *config.Config) string {
	if cfg.Transport == config.TransportGRPC {
		return cfg.ServerAddress
	}

	return cfg.HTTPAddress
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the alarm binaries.
type Config struct {
	// ServerAddress is the gRPC server address for alarm service connections.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the REST server address for alarm service connections.
	HTTPAddress string `yaml:"http_addr"`
	// Transport selects the client protocol: "rest" or "grpc".
	Transport string `yaml:"transport"`
	// AlarmsFile is the path to the JSON file storing the alarm catalog.
	AlarmsFile string `yaml:"alarms_file"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Mode selects how the client decides ringing: "local" or "remote".
	Mode string `yaml:"mode"`
	// LocalEvalInterval is the poll period of local evaluation.
	LocalEvalInterval time.Duration `yaml:"local_eval_interval"`
	// RemoteStatusInterval is the poll period of the remote ringing status.
	RemoteStatusInterval time.Duration `yaml:"remote_status_interval"`
	// RefreshInterval reloads the alarm list periodically when positive.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	// ServerEvalInterval is the poll period of the server-side trigger loop.
	ServerEvalInterval time.Duration `yaml:"server_eval_interval"`
	// RingTimeout silences an alert that rings longer than this when positive.
	RingTimeout time.Duration `yaml:"ring_timeout"`
	// Sound selects the tone backend: "auto", "oto", "bell", "termux" or "none".
	Sound string `yaml:"sound"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// LogFile enables a rotating log file when set.
	LogFile string `yaml:"log_file"`
}

const (
	// DefaultConfigFilename is the default filename for connection settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultAlarmsFilename is the default filename for the alarm catalog JSON.
	DefaultAlarmsFilename = "alarms.json"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLocalEvalInterval is the local evaluation poll period.
	DefaultLocalEvalInterval = 5 * time.Second

	// DefaultRemoteStatusInterval is the remote status poll period.
	DefaultRemoteStatusInterval = 2 * time.Second

	// DefaultServerEvalInterval is the server-side trigger loop period.
	DefaultServerEvalInterval = 15 * time.Second

	// DefaultServerRingTimeout silences a server alert after five minutes.
	DefaultServerRingTimeout = 5 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// TransportREST selects JSON over HTTP.
	TransportREST = "rest"
	// TransportGRPC selects gRPC.
	TransportGRPC = "grpc"

	// ModeLocal evaluates alarms against the client clock.
	ModeLocal = "local"
	// ModeRemote mirrors the ringing status polled from the server.
	ModeRemote = "remote"

	// SoundAuto picks the first available tone backend.
	SoundAuto = "auto"
	// SoundOto plays a generated sine tone through the audio device.
	SoundOto = "oto"
	// SoundBell writes the terminal bell character.
	SoundBell = "bell"
	// SoundTermux plays the alarm through termux-media-player.
	SoundTermux = "termux"
	// SoundNone disables the tone.
	SoundNone = "none"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when no server address is set.
	errServerSocketRequired = errors.New("server address must be provided")
	// errUnknownTransport is returned for an unsupported transport name.
	errUnknownTransport = errors.New("unknown transport")
	// errUnknownMode is returned for an unsupported evaluation mode.
	errUnknownMode = errors.New("unknown evaluation mode")
	// errUnknownSound is returned for an unsupported tone backend.
	errUnknownSound = errors.New("unknown sound backend")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting
// and fills in defaults for everything left empty.
func Validate(settings *Config) error {
	if settings.ServerAddress == "" && settings.HTTPAddress == "" {
		return errServerSocketRequired
	}

	for _, address := range []string{settings.ServerAddress, settings.HTTPAddress} {
		if address == "" {
			continue
		}

		if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
			return fmt.Errorf("invalid server socket: %w", err)
		}
	}

	switch settings.Transport {
	case "":
		settings.Transport = TransportREST
		if settings.HTTPAddress == "" {
			settings.Transport = TransportGRPC
		}
	case TransportREST, TransportGRPC:
	default:
		return fmt.Errorf("%w: %q", errUnknownTransport, settings.Transport)
	}

	if settings.Transport == TransportREST && settings.HTTPAddress == "" ||
		settings.Transport == TransportGRPC && settings.ServerAddress == "" {
		return fmt.Errorf("%w for transport %s", errServerSocketRequired, settings.Transport)
	}

	switch settings.Mode {
	case "":
		settings.Mode = ModeLocal
	case ModeLocal, ModeRemote:
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, settings.Mode)
	}

	switch settings.Sound {
	case "":
		settings.Sound = SoundAuto
	case SoundAuto, SoundOto, SoundBell, SoundTermux, SoundNone:
	default:
		return fmt.Errorf("%w: %q", errUnknownSound, settings.Sound)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LocalEvalInterval <= 0 {
		settings.LocalEvalInterval = DefaultLocalEvalInterval
	}

	if settings.RemoteStatusInterval <= 0 {
		settings.RemoteStatusInterval = DefaultRemoteStatusInterval
	}

	if settings.ServerEvalInterval <= 0 {
		settings.ServerEvalInterval = DefaultServerEvalInterval
	}

	if settings.RefreshInterval < 0 {
		settings.RefreshInterval = 0
	}

	if settings.RingTimeout < 0 {
		settings.RingTimeout = 0
	}

	// Set default alarms file if not specified
	if settings.AlarmsFile == "" {
		settings.AlarmsFile = DefaultAlarmsFilename
	}

	return nil
}

// PollInterval returns the poll period matching the configured mode.
func (c *Config) PollInterval() time.Duration {
	if c.Mode == ModeRemote {
		return c.RemoteStatusInterval
	}

	return c.LocalEvalInterval
}

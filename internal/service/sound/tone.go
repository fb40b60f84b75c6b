package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/logger"
)

const (
	// termuxPlayer is the termux-api media player command.
	termuxPlayer = "termux-media-player"
	// DefaultRingtone is the Android alarm ringtone played through termux.
	DefaultRingtone = "/system/media/audio/alarms/Argon.ogg"
)

// errUnknownBackend is returned for an unsupported sound setting.
var errUnknownBackend = errors.New("unknown sound backend")

// Bell writes the terminal bell character for every burst.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell tone writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Beep writes one bell character.
func (b *Bell) Beep(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("write bell: %w", err)
	}

	return nil
}

// Termux plays a ringtone file with termux-media-player.
type Termux struct {
	file string
}

// NewTermux creates a termux tone. An empty file selects DefaultRingtone.
func NewTermux(file string) *Termux {
	if file == "" {
		file = DefaultRingtone
	}

	return &Termux{file: file}
}

// Beep starts the ringtone.
func (t *Termux) Beep(ctx context.Context) error {
	if err := exec.CommandContext(ctx, termuxPlayer, "play", t.file).Run(); err != nil {
		return fmt.Errorf("play %s: %w", t.file, err)
	}

	return nil
}

// Detect returns the tone for the given sound setting. The auto setting
// prefers termux, then the audio device, then the terminal bell. The none
// setting returns a nil tone.
func Detect(ctx context.Context, backend string, w io.Writer) (engine.Tone, error) {
	switch backend {
	case config.SoundNone:
		return nil, nil //nolint:nilnil // A nil tone disables sound.
	case config.SoundBell:
		return NewBell(w), nil
	case config.SoundTermux:
		return NewTermux(""), nil
	case config.SoundOto:
		return NewSine(ctx)
	case "", config.SoundAuto:
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
	}

	if _, err := exec.LookPath(termuxPlayer); err == nil {
		logger.Debug(ctx, "Using termux-media-player for alarm sound")
		return NewTermux(""), nil
	}

	sine, err := NewSine(ctx)
	if err == nil {
		logger.Debug(ctx, "Using audio device for alarm sound")
		return sine, nil
	}

	logger.WarnKV(ctx, "Audio device unavailable, falling back to terminal bell", "error", err)

	return NewBell(w), nil
}

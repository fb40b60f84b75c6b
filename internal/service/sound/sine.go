package sound

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	// SampleRate is the playback sample rate in Hz.
	SampleRate = 44100
	// Frequency is the tone pitch in Hz.
	Frequency = 800.0
	// BurstDuration is the length of one tone burst.
	BurstDuration = 500 * time.Millisecond

	volume        = 0.6
	fadeDuration  = 10 * time.Millisecond
	bytesPerFrame = 2
	pollInterval  = 10 * time.Millisecond
)

// otoContext is shared: oto allows one context per process.
//
//nolint:gochecknoglobals // Process-wide audio device handle.
var (
	otoOnce    sync.Once
	otoCtx     *oto.Context
	otoInitErr error
)

// Sine plays a generated sine burst through the audio device.
type Sine struct {
	ctx     *oto.Context
	samples []byte
}

// NewSine opens the audio device and prepares the burst samples.
func NewSine(ctx context.Context) (*Sine, error) {
	audio, err := openContext(ctx)
	if err != nil {
		return nil, err
	}

	return &Sine{
		ctx:     audio,
		samples: Burst(SampleRate, Frequency, BurstDuration),
	}, nil
}

// Beep plays one burst and returns when it finished or ctx is canceled.
func (s *Sine) Beep(ctx context.Context) error {
	player := s.ctx.NewPlayer(bytes.NewReader(s.samples))
	defer func() {
		_ = player.Close()
	}()

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return nil
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("play tone: %w", err)
	}

	return nil
}

// Burst renders a mono signed 16-bit little-endian sine wave with short
// fade-in and fade-out ramps.
func Burst(sampleRate int, frequency float64, duration time.Duration) []byte {
	frames := int(int64(sampleRate) * duration.Milliseconds() / 1000)
	fade := int(int64(sampleRate) * fadeDuration.Milliseconds() / 1000)
	buffer := make([]byte, frames*bytesPerFrame)

	for i := range frames {
		amplitude := volume
		switch {
		case i < fade:
			amplitude *= float64(i) / float64(fade)
		case i >= frames-fade:
			amplitude *= float64(frames-1-i) / float64(fade)
		}

		sample := amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(buffer[i*bytesPerFrame:], uint16(int16(sample*math.MaxInt16)))
	}

	return buffer
}

// openContext initializes the shared oto context once.
func openContext(ctx context.Context) (*oto.Context, error) {
	otoOnce.Do(func() {
		audio, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoInitErr = fmt.Errorf("open audio device: %w", err)
			return
		}

		select {
		case <-ready:
			otoCtx = audio
		case <-ctx.Done():
			otoInitErr = fmt.Errorf("open audio device: %w", ctx.Err())
		}
	})

	return otoCtx, otoInitErr
}

package alarm

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLabel is used when an alarm or a ringing status has no label.
	DefaultLabel = "Alarm"
	// DefaultSoundFile is the sound reference assigned to new alarms.
	DefaultSoundFile = "default"

	// MaxHour is the last valid hour of the day.
	MaxHour = 23
	// MaxMinute is the last valid minute of the hour.
	MaxMinute = 59
)

// Alarm is a daily wake-up definition.
type Alarm struct {
	// ID is assigned by the catalog and unique within a snapshot.
	ID string `json:"id"`
	// Hour is in [0,23].
	Hour int `json:"hour"`
	// Minute is in [0,59].
	Minute int `json:"minute"`
	// Label is free text shown while ringing.
	Label string `json:"label"`
	// Enabled alarms fire; disabled alarms never do.
	Enabled bool `json:"enabled"`
	// Vibrate requests a device vibration when the alarm fires.
	Vibrate bool `json:"vibrate"`
	// SoundFile references the tone played by the server side.
	SoundFile string `json:"sound_file,omitempty"`
	// Ringing is set by the server for the alarm that currently rings.
	Ringing bool `json:"ringing"`
}

// Valid reports whether hour and minute are within range and the id is set.
func (a *Alarm) Valid() bool {
	return a.ID != "" && validClock(a.Hour, a.Minute)
}

// DisplayLabel returns the label or DefaultLabel when it is empty.
func (a *Alarm) DisplayLabel() string {
	return labelOrDefault(a.Label)
}

// Clock renders the alarm time as HH:MM.
func (a *Alarm) Clock() string {
	return FormatClock(a.Hour, a.Minute)
}

// Matches reports whether the alarm is scheduled for the minute of t.
func (a *Alarm) Matches(t time.Time) bool {
	return a.Hour == t.Hour() && a.Minute == t.Minute()
}

// Draft is a request to create an alarm.
type Draft struct {
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Label   string `json:"label"`
	Vibrate bool   `json:"vibrate"`
}

// Normalize validates the draft and fills in the default label.
func (d *Draft) Normalize() error {
	if !validClock(d.Hour, d.Minute) {
		return fmt.Errorf("%w: time %d:%d is out of range", ErrInvalidInput, d.Hour, d.Minute)
	}

	d.Label = labelOrDefault(d.Label)

	return nil
}

// ParseDraft builds a draft from textual hour and minute inputs.
func ParseDraft(hour, minute, label string, vibrate bool) (*Draft, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil {
		return nil, fmt.Errorf("%w: hour %q is not a number", ErrInvalidInput, hour)
	}

	m, err := strconv.Atoi(strings.TrimSpace(minute))
	if err != nil {
		return nil, fmt.Errorf("%w: minute %q is not a number", ErrInvalidInput, minute)
	}

	draft := &Draft{
		Hour:    h,
		Minute:  m,
		Label:   label,
		Vibrate: vibrate,
	}

	if err = draft.Normalize(); err != nil {
		return nil, err
	}

	return draft, nil
}

// RemoteStatus is the authoritative ringing status reported by the server.
type RemoteStatus struct {
	Ringing bool   `json:"ringing"`
	Label   string `json:"label,omitempty"`
	// AlarmID is the alarm causing the server alert, when known.
	AlarmID string `json:"alarm_id,omitempty"`
}

// DisplayLabel returns the reported label or DefaultLabel when it is omitted.
func (s *RemoteStatus) DisplayLabel() string {
	return labelOrDefault(s.Label)
}

// FormatClock renders hour and minute as HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= MaxHour && minute >= 0 && minute <= MaxMinute
}

func labelOrDefault(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultLabel
	}

	return label
}

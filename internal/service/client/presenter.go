package client

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/service/export"
)

var (
	mutedFormat   = color.New(color.FgHiBlack).SprintFunc()
	boldFormat    = color.New(color.FgHiWhite, color.Bold).SprintFunc()
	goodFormat    = color.New(color.FgGreen).SprintFunc()
	warningFormat = color.New(color.FgHiYellow).SprintFunc()
	alertFormat   = color.New(color.FgWhite, color.BgRed, color.Bold).SprintFunc()
	clockFormat   = color.New(color.FgCyan).SprintFunc()
)

// TerminalPresenter renders engine events on a terminal.
type TerminalPresenter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
	// clockLine is set while the last write was an unterminated clock line.
	clockLine bool
}

// NewTerminalPresenter creates a presenter writing to out.
func NewTerminalPresenter(out io.Writer) *TerminalPresenter {
	return &TerminalPresenter{
		out: out,
		now: time.Now,
	}
}

// RenderAlarms prints the alarm list with the next occurrence of every enabled alarm.
func (p *TerminalPresenter) RenderAlarms(snapshot *domain.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.breakClockLine()

	alarms := snapshot.Alarms()
	if len(alarms) == 0 {
		_, _ = fmt.Fprintln(p.out, mutedFormat("No alarms set"))
		return
	}

	_, _ = fmt.Fprint(p.out, FormatAlarms(alarms, p.now()))
}

// RenderRinging prints the alert banner or its dismissal.
func (p *TerminalPresenter) RenderRinging(view engine.RingingView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.breakClockLine()

	if !view.Ringing {
		_, _ = fmt.Fprintln(p.out, mutedFormat("Alarm stopped"))
		return
	}

	banner := fmt.Sprintf(" ALARM %s: %s ", view.Since.Format("15:04"), labelOf(view.Label))
	_, _ = fmt.Fprintln(p.out, alertFormat(banner))
	_, _ = fmt.Fprintln(p.out, mutedFormat("Type \"s\" and press Enter to stop"))
}

// Notify prints a one-line notification.
func (p *TerminalPresenter) Notify(level engine.Level, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.breakClockLine()

	switch level {
	case engine.LevelSuccess:
		message = goodFormat(message)
	case engine.LevelWarning, engine.LevelError:
		message = warningFormat(message)
	}

	_, _ = fmt.Fprintln(p.out, message)
}

// RenderClock rewrites the current clock line in place.
func (p *TerminalPresenter) RenderClock(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprint(p.out, "\r", clockFormat(now.Format("15:04:05")))
	p.clockLine = true
}

func (p *TerminalPresenter) breakClockLine() {
	if p.clockLine {
		_, _ = fmt.Fprintln(p.out)
		p.clockLine = false
	}
}

// FormatAlarms renders alarms one per line.
func FormatAlarms(alarms []domain.Alarm, now time.Time) string {
	var b strings.Builder

	for i := range alarms {
		a := &alarms[i]

		state := goodFormat("on ")
		next := humanize.Time(export.NextOccurrence(a, now))

		if !a.Enabled {
			state = mutedFormat("off")
			next = mutedFormat("disabled")
		}

		vibrate := ""
		if a.Vibrate {
			vibrate = mutedFormat(" vibrate")
		}

		ringing := ""
		if a.Ringing {
			ringing = " " + alertFormat(" RINGING ")
		}

		_, _ = fmt.Fprintf(&b, "%s  %s  %s  %s  %s%s%s\n",
			boldFormat(a.Clock()), state, a.DisplayLabel(), mutedFormat(a.ID), next, vibrate, ringing)
	}

	return b.String()
}

// FormatStatus renders the authoritative ringing status.
func FormatStatus(status *domain.RemoteStatus) string {
	if status == nil || !status.Ringing {
		return mutedFormat("Not ringing")
	}

	return alertFormat(" RINGING ") + " " + status.DisplayLabel()
}

func labelOf(label string) string {
	if label == "" {
		return domain.DefaultLabel
	}

	return label
}

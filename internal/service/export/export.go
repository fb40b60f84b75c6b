package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

const (
	// ProductID identifies the producer of exported calendars.
	ProductID = "-//oshokin//alarm-clock//EN"

	// floatingLayout formats a local date-time without a time zone.
	floatingLayout = "20060102T150405"
	// eventDuration is the length of every exported event.
	eventDuration = time.Minute
)

// Options tunes the export.
type Options struct {
	// IncludeDisabled exports disabled alarms as cancelled events.
	IncludeDisabled bool
}

// Calendar builds a calendar with one daily event per alarm. Start times are
// floating local times so the alarm keeps its wall-clock time across time zones.
func Calendar(alarms []alarm.Alarm, now time.Time, opts Options) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for i := range alarms {
		a := &alarms[i]
		if !a.Enabled && !opts.IncludeDisabled {
			continue
		}

		cal.Children = append(cal.Children, event(a, now).Component)
	}

	return cal
}

// Write encodes the calendar for alarms to w.
func Write(w io.Writer, alarms []alarm.Alarm, now time.Time, opts Options) error {
	if err := ical.NewEncoder(w).Encode(Calendar(alarms, now, opts)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	return nil
}

// NextOccurrence returns the first time at or after now the alarm fires.
func NextOccurrence(a *alarm.Alarm, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), a.Hour, a.Minute, 0, 0, now.Location())
	if next.Before(now.Truncate(time.Minute)) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

func event(a *alarm.Alarm, now time.Time) *ical.Event {
	start := NextOccurrence(a, now)

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, a.ID+"@alarm-clock")
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ev.Props.SetText(ical.PropSummary, a.DisplayLabel())
	ev.Props.Set(floating(ical.PropDateTimeStart, start))
	ev.Props.Set(floating(ical.PropDateTimeEnd, start.Add(eventDuration)))

	rule := ical.NewProp(ical.PropRecurrenceRule)
	rule.Value = "FREQ=DAILY"
	ev.Props.Set(rule)

	if !a.Enabled {
		ev.Props.SetText(ical.PropStatus, "CANCELLED")
	}

	reminder := ical.NewComponent(ical.CompAlarm)
	reminder.Props.SetText(ical.PropAction, "DISPLAY")
	reminder.Props.SetText(ical.PropDescription, a.DisplayLabel())

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "PT0S"
	reminder.Props.Set(trigger)

	ev.Children = append(ev.Children, reminder)

	return ev
}

// floating builds a date-time property without a time zone.
func floating(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)

	return prop
}

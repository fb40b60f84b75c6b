// Package export renders the alarm list as an iCalendar feed so alarms can be
// imported into calendar applications. Every enabled alarm becomes a daily
// recurring event with a display reminder at its start.
package export

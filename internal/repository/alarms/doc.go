// Package alarms implements persistence for the alarm catalog.
//
// The FileRepository stores the alarm list as a JSON array on disk and
// satisfies the catalog contract the alarm engine depends on.
package alarms

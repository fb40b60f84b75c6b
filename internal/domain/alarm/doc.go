// Package alarm contains core domain types for the alarm clock.
//
// It defines Alarm (a daily wake-up definition), Draft (a creation request),
// Snapshot (an immutable copy of the alarm list at a point in time),
// RemoteStatus (the authoritative ringing flag) and Actor (who changed the
// catalog), together with validation and the shared error taxonomy.
package alarm

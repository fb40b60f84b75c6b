// Package engine implements the alarm trigger and state-synchronization core.
//
// An Engine owns an AlarmStore (the last fetched snapshot) and a RingingState,
// polls either the local clock (local-evaluation mode) or the authoritative
// ringing status (remote-status mode) on a Scheduler, and drives an Actuator
// that produces the audible and vibration side effects. The evaluators are pure
// functions of their inputs so they can be tested without timers.
package engine

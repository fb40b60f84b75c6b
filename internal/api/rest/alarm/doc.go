// Package alarm implements the JSON-over-HTTP transport for the alarm service.
//
// Routes:
//
//	GET    /api/alarms             list alarms
//	POST   /api/alarms             create an alarm
//	DELETE /api/alarms/{id}        delete an alarm
//	PUT    /api/alarms/{id}/toggle flip the enabled flag
//	POST   /api/alarms/stop        dismiss the server alert
//	GET    /api/alarms/ringing     authoritative ringing status
//
// The caller identity travels in the X-Alarm-Actor-Host and
// X-Alarm-Actor-User headers.
package alarm

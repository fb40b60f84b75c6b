// Package alarm implements the gRPC transport for the alarm service.
//
// It adapts domain types to the alarmclock.v1 wire messages and exposes a
// server that calls into a provided business-service interface. Domain errors
// are mapped to gRPC status codes.
package alarm

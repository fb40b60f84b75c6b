// Package alarmv1 defines the wire messages and the gRPC service descriptor
// of the alarmclock.v1.AlarmService API.
//
// Messages travel as JSON through a codec registered under the "json" content
// subtype, so the API needs no generated protobuf code. The client stub selects
// that codec on every call.
package alarmv1

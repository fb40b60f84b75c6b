// Package server implements the authoritative alarm server.
//
// The server owns the alarm catalog file, runs the alarm engine in local
// evaluation mode against it, and exposes the catalog and the ringing status
// over REST and gRPC.
package server

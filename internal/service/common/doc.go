// Package common holds helpers shared by several services.
//
// It provides the alarm server clients used by the polling client, one per
// transport (gRPC and JSON over HTTP). Both bound every call with a timeout,
// forward the caller identity, and map transport failures onto the domain
// error taxonomy. It also detects the current system actor for audit purposes.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

// Package config defines settings used by the alarm binaries and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the server addresses (gRPC and REST), the client
// transport and evaluation mode, poll intervals and logging options.
package config

// Package integration holds end-to-end tests that run the alarm server in
// process and talk to it over both transports.
package integration

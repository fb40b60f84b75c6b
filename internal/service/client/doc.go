// Package client implements the alarm client: the long-running watcher that
// rings alongside the server, the one-shot catalog commands and the autostart
// registration.
package client

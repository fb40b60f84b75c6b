// Package sound provides the tone backends used by the alert actuator.
//
// Backends: a generated 800 Hz sine burst played through oto, the
// termux-media-player alarm ringtone, and the terminal bell. Detect picks one
// according to the configured sound setting.
package sound

// Package device drives the termux-api helpers used on Android hosts:
// vibration through termux-vibrate and the CPU wake lock through
// termux-wake-lock and termux-wake-unlock.
package device

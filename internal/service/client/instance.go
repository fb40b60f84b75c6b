package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/alarm-clock/internal/config"
)

// DefaultPIDFilename is the marker of the running watcher.
const DefaultPIDFilename = "alarm-clock-watch.pid"

// ErrAlreadyRunning is returned when another watcher owns the marker.
var ErrAlreadyRunning = errors.New("alarm watcher is already running")

// processFinder looks up a running process by id.
type processFinder func(pid int) (ps.Process, error)

// instanceLock keeps a single watcher per user.
type instanceLock struct {
	path string
	find processFinder
	pid  int
}

// newInstanceLock creates a lock backed by the marker file at path.
func newInstanceLock(path string) *instanceLock {
	if path == "" {
		path = filepath.Join(os.TempDir(), DefaultPIDFilename)
	}

	return &instanceLock{
		path: path,
		find: ps.FindProcess,
		pid:  os.Getpid(),
	}
}

// Acquire writes the marker unless a live process with the same executable owns it.
// Stale markers are replaced.
func (l *instanceLock) Acquire() error {
	contents, err := os.ReadFile(l.path)

	switch {
	case err == nil:
		owner, parseErr := strconv.Atoi(strings.TrimSpace(string(contents)))
		if parseErr == nil && owner != l.pid && l.alive(owner) {
			return fmt.Errorf("%w with pid %d", ErrAlreadyRunning, owner)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read pid marker: %w", err)
	}

	data := []byte(strconv.Itoa(l.pid))
	if err = os.WriteFile(l.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write pid marker: %w", err)
	}

	return nil
}

// Release removes the marker when it is still ours.
func (l *instanceLock) Release() error {
	contents, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read pid marker: %w", err)
	}

	if strings.TrimSpace(string(contents)) != strconv.Itoa(l.pid) {
		return nil
	}

	if err = os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid marker: %w", err)
	}

	return nil
}

// alive reports whether pid runs the same executable as this process.
func (l *instanceLock) alive(pid int) bool {
	owner, err := l.find(pid)
	if err != nil || owner == nil {
		return false
	}

	self, err := l.find(l.pid)
	if err != nil || self == nil {
		return true
	}

	return owner.Executable() == self.Executable()
}

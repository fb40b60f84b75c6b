//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// errUnknownUser is returned when neither the user database nor the
// environment names the current user.
var errUnknownUser = errors.New("current user is unknown")

// usernameVariables are consulted when the user database is unavailable,
// as on Android.
var usernameVariables = []string{"USER", "LOGNAME", "USERNAME"}

// DetectActor identifies the caller for the server audit log.
func DetectActor() (*domain.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	username, err := detectUsername(user.Current, os.Getenv)
	if err != nil {
		return nil, err
	}

	return &domain.Actor{
		Hostname: hostname,
		Username: username,
	}, nil
}

// detectUsername prefers the user database and falls back to the environment.
func detectUsername(current func() (*user.User, error), getenv func(string) string) (string, error) {
	u, lookupErr := current()
	if lookupErr == nil && u.Username != "" {
		return u.Username, nil
	}

	for _, name := range usernameVariables {
		if value := getenv(name); value != "" {
			return value, nil
		}
	}

	if lookupErr != nil {
		return "", fmt.Errorf("%w: %w", errUnknownUser, lookupErr)
	}

	return "", errUnknownUser
}

//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"os/user"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectActor ensures hostname and username are detected and non-empty.
func TestDetectActor(t *testing.T) {
	t.Parallel()

	a, err := DetectActor()
	require.NoError(t, err)
	require.NotEmpty(t, a.Hostname)
	require.NotEmpty(t, a.Username)
}

// TestDetectUsername covers the environment fallback.
func TestDetectUsername(t *testing.T) {
	t.Parallel()

	errLookup := errors.New("lookup failed")
	failing := func() (*user.User, error) { return nil, errLookup }
	env := func(values map[string]string) func(string) string {
		return func(name string) string { return values[name] }
	}

	name, err := detectUsername(func() (*user.User, error) {
		return &user.User{Username: "oleg"}, nil
	}, env(nil))
	require.NoError(t, err)
	require.Equal(t, "oleg", name)

	name, err = detectUsername(failing, env(map[string]string{"LOGNAME": "u0_a123"}))
	require.NoError(t, err)
	require.Equal(t, "u0_a123", name)

	_, err = detectUsername(failing, env(nil))
	require.ErrorIs(t, err, errUnknownUser)
	require.ErrorIs(t, err, errLookup)
}

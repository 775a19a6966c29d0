package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func host(euid int, goos string) Host {
	return Host{
		Euid: func() int { return euid },
		GOOS: func() string { return goos },
	}
}

func TestHostRejectsNonRootCaller(t *testing.T) {
	err := host(501, "darwin").Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Contains(t, err.Error(), "root privilege required")
	assert.Contains(t, err.Error(), "euid=501")
}

func TestHostRejectsNonDarwinHost(t *testing.T) {
	err := host(0, "linux").Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
	assert.Contains(t, err.Error(), "macOS host required")
}

func TestHostChecksPrivilegeBeforePlatform(t *testing.T) {
	// A non-root caller on the wrong platform gets the privilege error.
	err := host(501, "linux").Verify()
	assert.True(t, errors.Is(err, ErrPermissionDenied))
}

func TestHostAcceptsRootOnDarwin(t *testing.T) {
	require.NoError(t, host(0, "darwin").Verify())
}

func TestNopAlwaysPasses(t *testing.T) {
	require.NoError(t, Nop{}.Verify())
}

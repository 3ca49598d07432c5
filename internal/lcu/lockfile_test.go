package lcu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLockfile(t *testing.T) {
	lockfile, err := ParseLockfile("LeagueClient:12345:52809:supersecret:https\n")
	require.NoError(t, err)
	assert.Equal(t, "LeagueClient", lockfile.Name)
	assert.Equal(t, 12345, lockfile.PID)
	assert.Equal(t, 52809, lockfile.Port)
	assert.Equal(t, "supersecret", lockfile.Password)
	assert.Equal(t, "https", lockfile.Protocol)
}

func TestParseLockfileRejectsMalformedInput(t *testing.T) {
	_, err := ParseLockfile("LeagueClient:12345:52809")
	assert.Error(t, err)

	_, err = ParseLockfile("LeagueClient:notapid:52809:pw:https")
	assert.Error(t, err)

	_, err = ParseLockfile("LeagueClient:12345:notaport:pw:https")
	assert.Error(t, err)

	_, err = ParseLockfile("")
	assert.Error(t, err)
}

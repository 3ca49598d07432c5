package identity_test

import (
	"context"
	"testing"

	"github.com/larsmk/riftline/internal/identity"
	"github.com/larsmk/riftline/internal/lcu"
	"github.com/larsmk/riftline/internal/riot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExplicitRiotID(t *testing.T) {
	riotMock := riot.NewMockClient()
	riotMock.GetAccountByRiotIDFunc = func(gameName, tagLine string) (*riot.Account, error) {
		assert.Equal(t, "Faker", gameName)
		assert.Equal(t, "KR1", tagLine)
		return &riot.Account{Puuid: "abc", GameName: gameName, TagLine: tagLine}, nil
	}

	resolver := identity.NewResolver(riotMock, lcu.NewMockClient(), t.TempDir())
	player, err := resolver.Resolve(context.Background(), "Faker#KR1")
	require.NoError(t, err)
	assert.Equal(t, "abc", player.Puuid)
	assert.Equal(t, "Faker#KR1", player.DisplayName())
}

func TestResolveRejectsNameWithoutTag(t *testing.T) {
	resolver := identity.NewResolver(riot.NewMockClient(), lcu.NewMockClient(), t.TempDir())
	_, err := resolver.Resolve(context.Background(), "Faker")
	assert.Error(t, err)
}

func TestResolveActivePlayerGoesThroughClient(t *testing.T) {
	riotMock := riot.NewMockClient()
	riotMock.GetAccountByRiotIDFunc = func(gameName, tagLine string) (*riot.Account, error) {
		return &riot.Account{Puuid: "active-puuid", GameName: gameName, TagLine: tagLine}, nil
	}
	lcuMock := lcu.NewMockClient()

	resolver := identity.NewResolver(riotMock, lcuMock, t.TempDir())
	player, err := resolver.Resolve(context.Background(), identity.ActivePlayer)
	require.NoError(t, err)
	assert.Equal(t, "active-puuid", player.Puuid)
	assert.Equal(t, 1, lcuMock.GetActiveAccountCalls)

	// An empty name means the active player too.
	player, err = resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "active-puuid", player.Puuid)
}

func TestResolveActivePlayerUsesDurableCache(t *testing.T) {
	riotMock := riot.NewMockClient()
	riotMock.GetAccountByRiotIDFunc = func(gameName, tagLine string) (*riot.Account, error) {
		return &riot.Account{Puuid: "active-puuid", GameName: gameName, TagLine: tagLine}, nil
	}
	lcuMock := lcu.NewMockClient()
	dataDir := t.TempDir()

	resolver := identity.NewResolver(riotMock, lcuMock, dataDir)
	_, err := resolver.Resolve(context.Background(), identity.ActivePlayer)
	require.NoError(t, err)

	// A fresh resolver over the same data dir reads the cached record and
	// never touches the game client again.
	resolver = identity.NewResolver(riotMock, lcuMock, dataDir)
	player, err := resolver.Resolve(context.Background(), identity.ActivePlayer)
	require.NoError(t, err)
	assert.Equal(t, "active-puuid", player.Puuid)
	assert.Equal(t, 1, lcuMock.GetActiveAccountCalls)
	assert.Equal(t, 1, riotMock.GetAccountByRiotIDCalls)
}

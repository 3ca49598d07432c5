package riot

import "context"

// Client defines the surface the aggregation pipeline needs from the Riot
// data API. The signing/proxy transport is an implementation detail of
// APIClient; tests swap in the mock.
type Client interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error)
	GetRankedMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	// GetMatch returns both the typed payload and the verbatim body; the raw
	// bytes are preserved in the store for forward compatibility.
	GetMatch(ctx context.Context, matchID string) (*Match, []byte, error)
	GetTopMasteries(ctx context.Context, puuid string, count int) ([]ChampionMastery, error)
	// GetActiveGame returns (nil, nil) when the player is not in a game.
	GetActiveGame(ctx context.Context, puuid string) (*CurrentGameInfo, error)
}

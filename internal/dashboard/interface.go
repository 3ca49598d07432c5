package dashboard

import "time"

// Store defines the interface for the dashboard cache.
type Store interface {
	// GetCachedDashboard returns the composed view when a summoner row exists
	// for puuid and is no older than the dashboard TTL at `now`. A stale or
	// missing row is an ordinary miss, not an error.
	GetCachedDashboard(puuid string, now time.Time) (*Data, bool, error)

	// GetSummonerBasics returns the level/icon profile fields when they are
	// within the shorter summoner-fields TTL.
	GetSummonerBasics(puuid string, now time.Time) (*BasicFields, bool, error)

	// SaveDashboard commits a full refresh in one transaction: summoner,
	// stats, replaced mastery set, live-game presence, and every match
	// bundle. Either everything lands or nothing does.
	SaveDashboard(puuid string, data *Data, bundles []*MatchBundle, now time.Time) error

	// GetMatchViews returns the player's stored view rows, newest first.
	GetMatchViews(puuid string) ([]MatchView, error)

	// GetLiveGame returns the stored live-game snapshot, if one exists.
	GetLiveGame(puuid string) (*LiveGame, bool, error)

	// CountMatchRows reports stored rows for one match id (header rows,
	// participant rows). Used by operational handlers and tests.
	CountMatchRows(matchID string) (matches int, participants int, err error)
}

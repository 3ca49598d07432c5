package dashboard_test

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/larsmk/riftline/internal/config"
	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (dashboard.Store, *sql.DB, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := dashboard.New(db)
	teardown := func() {
		db.Close()
	}

	return store, db, teardown
}

func testData(puuid string) *dashboard.Data {
	return &dashboard.Data{
		Summoner: dashboard.SummonerData{
			Puuid:         puuid,
			DisplayName:   "Faker#KR1",
			Level:         742,
			ProfileIconID: 6,
			Rank: dashboard.RankInfo{
				LeagueID:     "league-1",
				Tier:         "CHALLENGER",
				Division:     "I",
				LeaguePoints: 1204,
				Wins:         22,
				Losses:       18,
			},
			WinRate:      55,
			RecentGames:  2,
			FavoriteRole: "MIDDLE",
			MainChampion: "Azir",
		},
		ChampionMastery: []dashboard.MasteryEntry{
			{ChampionID: 268, Name: "Azir", Level: 7, Points: 403211, Icon: "🎯"},
			{ChampionID: 7, Name: "LeBlanc", Level: 7, Points: 250000, Icon: "🔫"},
			{ChampionID: 134, Name: "Syndra", Level: 6, Points: 120000, Icon: "🏹"},
			{ChampionID: 517, Name: "Sylas", Level: 5, Points: 90000, Icon: "✨"},
		},
		Stats: dashboard.Stats{TotalGames: 2, AvgGameTime: "28:41"},
	}
}

func testBundle(matchID, puuid string, withView bool) *dashboard.MatchBundle {
	bundle := &dashboard.MatchBundle{
		Record: dashboard.MatchRecord{
			MatchID:      matchID,
			RawJSON:      []byte(`{"metadata":{"matchId":"` + matchID + `"}}`),
			GameID:       4200,
			GameMode:     "CLASSIC",
			GameVersion:  "15.15.1",
			MapID:        11,
			QueueID:      420,
			GameCreation: 1700000000000,
			GameStart:    1700000060000,
			GameEnd:      1700001781000,
			DurationSecs: 1721,
		},
		Participants: []dashboard.ParticipantRow{
			{ParticipantID: 1, Puuid: puuid, ChampionName: "Azir", TeamID: 100, Kills: 7, Deaths: 2, Assists: 9, Win: true,
				MissionsJSON: "{}", PerksJSON: "{}", ChallengesJSON: "{}"},
			{ParticipantID: 2, Puuid: "other-puuid", ChampionName: "Ahri", TeamID: 200, Kills: 3, Deaths: 7, Assists: 4,
				MissionsJSON: "{}", PerksJSON: "{}", ChallengesJSON: "{}"},
		},
		Teams: []dashboard.TeamRow{
			{TeamID: 100, Win: true},
			{TeamID: 200, Win: false},
		},
		Bans: []dashboard.BanRow{
			{TeamID: 100, PickTurn: 1, ChampionID: 157},
			{TeamID: 200, PickTurn: 6, ChampionID: -1},
		},
		Objectives: []dashboard.ObjectiveRow{
			{TeamID: 100, Name: "baron", First: true, Kills: 1},
			{TeamID: 200, Name: "dragon", First: false, Kills: 2},
		},
	}
	if withView {
		bundle.View = &dashboard.MatchView{
			MatchID:   matchID,
			GameID:    4200,
			Champion:  "Azir",
			Result:    "Victory",
			KDA:       "7/2/9",
			Duration:  "28:41",
			GameMode:  "CLASSIC",
			Timestamp: "2023-11-14 22:14",
			CS:        244,
			Teams: []dashboard.TeamSummary{
				{TeamID: 100, Win: true, Kills: 7, Players: []dashboard.TeamPlayer{{Champion: "Azir"}}},
				{TeamID: 200, Win: false, Kills: 3, Players: []dashboard.TeamPlayer{{Champion: "Ahri"}}},
			},
		}
	}
	return bundle
}

func TestDashboardCacheFreshness(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	err := store.SaveDashboard(puuid, testData(puuid), nil, now)
	require.NoError(t, err)

	// Exactly at the TTL boundary the row still counts as fresh.
	data, ok, err := store.GetCachedDashboard(puuid, now.Add(config.DashboardTTL))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Faker#KR1", data.Summoner.DisplayName)
	assert.Equal(t, "CHALLENGER", data.Summoner.Rank.Tier)
	assert.Equal(t, 55, data.Summoner.WinRate)

	// One second past the boundary it is stale.
	_, ok, err = store.GetCachedDashboard(puuid, now.Add(config.DashboardTTL+time.Second))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCacheUnknownPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, ok, err := store.GetCachedDashboard("nobody", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSummonerBasicsTTL(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), nil, now))

	basics, ok, err := store.GetSummonerBasics(puuid, now.Add(config.SummonerFieldsTTL))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 742, basics.Level)
	assert.Equal(t, 6, basics.ProfileIconID)

	_, ok, err = store.GetSummonerBasics(puuid, now.Add(config.SummonerFieldsTTL+time.Second))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMasteryReplaceDropsStaleRows(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), nil, now))

	smaller := testData(puuid)
	smaller.ChampionMastery = smaller.ChampionMastery[:2]
	require.NoError(t, store.SaveDashboard(puuid, smaller, nil, now.Add(time.Minute)))

	data, ok, err := store.GetCachedDashboard(puuid, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, data.ChampionMastery, 2)
	assert.Equal(t, "Azir", data.ChampionMastery[0].Name)
	assert.Equal(t, "LeBlanc", data.ChampionMastery[1].Name)
}

func TestMatchRowsSharedAcrossPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)

	// Two players refresh dashboards containing the same match; the
	// normalized rows are written once, the view rows per player.
	require.NoError(t, store.SaveDashboard("puuid-1", testData("puuid-1"), []*dashboard.MatchBundle{testBundle("EUW1_1", "puuid-1", true)}, now))
	require.NoError(t, store.SaveDashboard("other-puuid", testData("other-puuid"), []*dashboard.MatchBundle{testBundle("EUW1_1", "puuid-1", true)}, now))

	matches, participants, err := store.CountMatchRows("EUW1_1")
	require.NoError(t, err)
	assert.Equal(t, 1, matches)
	assert.Equal(t, 2, participants)

	views1, err := store.GetMatchViews("puuid-1")
	require.NoError(t, err)
	views2, err := store.GetMatchViews("other-puuid")
	require.NoError(t, err)
	assert.Len(t, views1, 1)
	assert.Len(t, views2, 1)
}

func TestMatchWithoutViewKeepsNormalizedRows(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), []*dashboard.MatchBundle{testBundle("EUW1_2", puuid, false)}, now))

	matches, participants, err := store.CountMatchRows("EUW1_2")
	require.NoError(t, err)
	assert.Equal(t, 1, matches)
	assert.Equal(t, 2, participants)

	views, err := store.GetMatchViews(puuid)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestMatchViewRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), []*dashboard.MatchBundle{testBundle("EUW1_3", puuid, true)}, now))

	views, err := store.GetMatchViews(puuid)
	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, "EUW1_3", view.MatchID)
	assert.Equal(t, "7/2/9", view.KDA)
	assert.Equal(t, "Victory", view.Result)
	require.Len(t, view.Teams, 2)
	assert.Equal(t, 100, view.Teams[0].TeamID)
	assert.True(t, view.Teams[0].Win)
}

func TestLiveGamePresenceFollowsRefresh(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"

	inGame := testData(puuid)
	inGame.LiveGame = &dashboard.LiveGame{GameMode: "CLASSIC", Champion: "Azir", GameTime: "12:30", PerformanceScore: 8.2, Progress: 35}
	require.NoError(t, store.SaveDashboard(puuid, inGame, nil, now))

	live, ok, err := store.GetLiveGame(puuid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Azir", live.Champion)

	// The next refresh finds no active game; the snapshot row goes away.
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), nil, now.Add(time.Minute)))
	_, ok, err = store.GetLiveGame(puuid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsFallbackWhenRowMissing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), nil, now))

	_, err := db.Exec(`DELETE FROM stats WHERE puuid = ?`, puuid)
	require.NoError(t, err)

	data, ok, err := store.GetCachedDashboard(puuid, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, data.Stats.TotalGames)
	assert.Equal(t, "0:00", data.Stats.AvgGameTime)
}

func TestRawPayloadPreservedVerbatim(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	now := time.Unix(1700000000, 0)
	const puuid = "puuid-1"
	bundle := testBundle("EUW1_4", puuid, true)
	require.NoError(t, store.SaveDashboard(puuid, testData(puuid), []*dashboard.MatchBundle{bundle}, now))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT raw_json FROM matches WHERE match_id = ?`, "EUW1_4").Scan(&raw))
	assert.Equal(t, string(bundle.Record.RawJSON), raw)
	assert.True(t, json.Valid([]byte(raw)))
}

package dashboard_test

import (
	"fmt"
	"testing"

	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/riot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

// buildTestMatch produces a classic game with n participants alternating
// between the two team ids. Participant 1 carries the requesting player.
func buildTestMatch(matchID, puuid string, n int) *riot.Match {
	m := &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: matchID},
		Info: riot.MatchInfo{
			GameID:             4200,
			GameMode:           "CLASSIC",
			GameVersion:        "15.15.1",
			MapID:              11,
			QueueID:            420,
			GameCreation:       1700000000000,
			GameStartTimestamp: 1700000060000,
			GameEndTimestamp:   int64Ptr(1700001781000),
			GameDuration:       int64Ptr(1721),
			Teams: []riot.Team{
				{
					TeamID: 100,
					Win:    true,
					Bans:   []riot.Ban{{ChampionID: 157, PickTurn: 1}},
					Objectives: riot.TeamObjectives{
						Baron:  riot.Objective{First: true, Kills: 1},
						Dragon: riot.Objective{Kills: 3},
						Tower:  riot.Objective{First: true, Kills: 9},
					},
				},
				{
					TeamID: 200,
					Bans:   []riot.Ban{{ChampionID: -1, PickTurn: 6}},
				},
			},
		},
	}
	for i := 0; i < n; i++ {
		teamID := 100
		if i%2 == 1 {
			teamID = 200
		}
		p := riot.Participant{
			ParticipantID:        i + 1,
			Puuid:                fmt.Sprintf("p-%d", i+1),
			SummonerName:         fmt.Sprintf("Player%d", i+1),
			ChampionID:           int64(103),
			TeamID:               teamID,
			TeamPosition:         "MIDDLE",
			Kills:                i,
			Deaths:               2,
			Assists:              5,
			Win:                  teamID == 100,
			TotalMinionsKilled:   200,
			NeutralMinionsKilled: 44,
			GoldEarned:           12000,
		}
		if i == 0 {
			p.Puuid = puuid
			p.ChampionID = 268
			p.Kills = 7
			p.Perks = []byte(`{"styles":[]}`)
		}
		m.Info.Participants = append(m.Info.Participants, p)
	}
	return m
}

func TestDecomposeFullMatch(t *testing.T) {
	const puuid = "me-puuid"
	m := buildTestMatch("EUW1_100", puuid, 10)
	raw := []byte(`{"info":{}}`)

	bundle := dashboard.Decompose(m, raw, puuid)

	assert.Equal(t, "EUW1_100", bundle.Record.MatchID)
	assert.Equal(t, raw, bundle.Record.RawJSON)
	assert.Equal(t, int64(1721), bundle.Record.DurationSecs)
	require.Len(t, bundle.Participants, 10)
	assert.Equal(t, "Azir", bundle.Participants[0].ChampionName)
	assert.Equal(t, `{"styles":[]}`, bundle.Participants[0].PerksJSON)
	// Absent sub-objects land as empty objects, never null.
	assert.Equal(t, "{}", bundle.Participants[1].PerksJSON)
	assert.Equal(t, "{}", bundle.Participants[1].MissionsJSON)
	assert.Len(t, bundle.Teams, 2)
	assert.Len(t, bundle.Bans, 2)
	// Seven named objectives per team.
	assert.Len(t, bundle.Objectives, 14)

	require.NotNil(t, bundle.View)
	view := bundle.View
	assert.Equal(t, "Victory", view.Result)
	assert.Equal(t, "7/2/5", view.KDA)
	assert.Equal(t, "28:41", view.Duration)
	assert.Equal(t, 244, view.CS)
	assert.Equal(t, "2023-11-14 22:14", view.Timestamp)

	require.Len(t, view.Teams, 2)
	blue, red := view.Teams[0], view.Teams[1]
	assert.Equal(t, 100, blue.TeamID)
	assert.True(t, blue.Win)
	assert.False(t, red.Win)
	assert.Len(t, blue.Players, 5)
	assert.Len(t, red.Players, 5)
	// 7 + 2 + 4 + 6 + 8 kills on the blue side.
	assert.Equal(t, 27, blue.Kills)
}

func TestDecomposeOddRosterKeepsRowsSkipsView(t *testing.T) {
	const puuid = "me-puuid"
	m := buildTestMatch("EUW1_101", puuid, 8)

	bundle := dashboard.Decompose(m, []byte(`{}`), puuid)

	assert.Len(t, bundle.Participants, 8)
	assert.Len(t, bundle.Teams, 2)
	assert.Nil(t, bundle.View)
}

func TestDecomposePlayerAbsent(t *testing.T) {
	m := buildTestMatch("EUW1_102", "someone-else", 10)

	bundle := dashboard.Decompose(m, []byte(`{}`), "me-puuid")

	assert.Len(t, bundle.Participants, 10)
	assert.Nil(t, bundle.View)
}

func TestDurationSeconds(t *testing.T) {
	// Modern payload: gameDuration already in seconds.
	info := &riot.MatchInfo{GameDuration: int64Ptr(1721), GameEndTimestamp: int64Ptr(1700001781000)}
	assert.Equal(t, int64(1721), dashboard.DurationSeconds(info))

	// Legacy payload: gameDuration in milliseconds, no end timestamp.
	info = &riot.MatchInfo{GameDuration: int64Ptr(1721000)}
	assert.Equal(t, int64(1721), dashboard.DurationSeconds(info))

	// Neither: the longest timePlayed stands in.
	info = &riot.MatchInfo{Participants: []riot.Participant{
		{TimePlayed: int64Ptr(900)},
		{TimePlayed: int64Ptr(1500)},
	}}
	assert.Equal(t, int64(1500), dashboard.DurationSeconds(info))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", dashboard.FormatDuration(0))
	assert.Equal(t, "0:59", dashboard.FormatDuration(59))
	assert.Equal(t, "28:41", dashboard.FormatDuration(1721))
	assert.Equal(t, "61:05", dashboard.FormatDuration(3665))
}

func TestFormatTimestampFallsBackToCreation(t *testing.T) {
	assert.Equal(t, "2023-11-14 22:14", dashboard.FormatTimestamp(1700000060000, 0))
	assert.Equal(t, "2023-11-14 22:13", dashboard.FormatTimestamp(0, 1700000000000))
}

package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/larsmk/riftline/internal/champions"
	"github.com/larsmk/riftline/internal/riot"
)

// Team ids used by the match API for the two sides of a game.
const (
	BlueTeamID = 100
	RedTeamID  = 200
)

// RosterSize is the number of participants required to build the fixed
// two-team-of-five roster. Remakes and special modes can carry a different
// count; those matches keep their normalized rows but get no view row.
const RosterSize = 10

// Decompose converts one match payload into its normalized rows plus, when
// possible, the denormalized view row for the requesting player. It is a pure
// transform: no I/O, no clock reads.
func Decompose(m *riot.Match, raw []byte, puuid string) *MatchBundle {
	info := &m.Info
	bundle := &MatchBundle{
		Record: MatchRecord{
			MatchID:      m.Metadata.MatchID,
			RawJSON:      raw,
			GameID:       info.GameID,
			GameMode:     info.GameMode,
			GameVersion:  info.GameVersion,
			MapID:        info.MapID,
			QueueID:      info.QueueID,
			GameCreation: info.GameCreation,
			GameStart:    info.GameStartTimestamp,
			GameEnd:      derefInt64(info.GameEndTimestamp),
			DurationSecs: int64(DurationSeconds(info)),
		},
	}

	for i := range info.Participants {
		p := &info.Participants[i]
		slot := p.ParticipantID
		if slot == 0 {
			slot = i + 1
		}
		bundle.Participants = append(bundle.Participants, ParticipantRow{
			ParticipantID:               slot,
			Puuid:                       p.Puuid,
			SummonerName:                p.SummonerName,
			ChampionID:                  p.ChampionID,
			ChampionName:                champions.NameFromID(p.ChampionID),
			TeamID:                      p.TeamID,
			TeamPosition:                p.TeamPosition,
			Kills:                       p.Kills,
			Deaths:                      p.Deaths,
			Assists:                     p.Assists,
			Win:                         p.Win,
			Items:                       [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6},
			TotalMinionsKilled:          p.TotalMinionsKilled,
			NeutralMinionsKilled:        p.NeutralMinionsKilled,
			GoldEarned:                  p.GoldEarned,
			TurretKills:                 p.TurretKills,
			InhibitorKills:              p.InhibitorKills,
			TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
			TimePlayed:                  derefInt64(p.TimePlayed),
			MissionsJSON:                rawOrEmptyObject(p.Missions),
			PerksJSON:                   rawOrEmptyObject(p.Perks),
			ChallengesJSON:              rawOrEmptyObject(p.Challenges),
		})
	}

	for _, t := range info.Teams {
		bundle.Teams = append(bundle.Teams, TeamRow{TeamID: t.TeamID, Win: t.Win})
		for _, ban := range t.Bans {
			bundle.Bans = append(bundle.Bans, BanRow{
				TeamID:     t.TeamID,
				PickTurn:   ban.PickTurn,
				ChampionID: ban.ChampionID,
			})
		}
		for name, obj := range namedObjectives(t.Objectives) {
			bundle.Objectives = append(bundle.Objectives, ObjectiveRow{
				TeamID: t.TeamID,
				Name:   name,
				First:  obj.First,
				Kills:  obj.Kills,
			})
		}
	}

	bundle.View = buildView(m, puuid)
	return bundle
}

// buildView produces the denormalized per-player summary, or nil when the
// player is absent from the match or the roster precondition fails.
func buildView(m *riot.Match, puuid string) *MatchView {
	me := m.FindParticipant(puuid)
	if me == nil {
		return nil
	}
	teams, ok := buildRoster(&m.Info)
	if !ok {
		return nil
	}

	result := "Defeat"
	if me.Win {
		result = "Victory"
	}
	durationSecs := DurationSeconds(&m.Info)
	return &MatchView{
		MatchID:   m.Metadata.MatchID,
		GameID:    m.Info.GameID,
		Champion:  champions.NameFromID(me.ChampionID),
		Result:    result,
		KDA:       fmt.Sprintf("%d/%d/%d", me.Kills, me.Deaths, me.Assists),
		Duration:  FormatDuration(durationSecs),
		GameMode:  m.Info.GameMode,
		Timestamp: FormatTimestamp(m.Info.GameStartTimestamp, m.Info.GameCreation),
		CS:        saturatingAdd(me.TotalMinionsKilled, me.NeutralMinionsKilled),
		Teams:     teams,
	}
}

// buildRoster splits the participants into the two fixed five-player sides
// and aggregates per-team stats. Returns ok=false unless exactly ten
// participants split five and five across team ids 100 and 200.
func buildRoster(info *riot.MatchInfo) ([]TeamSummary, bool) {
	if len(info.Participants) != RosterSize {
		return nil, false
	}

	summaries := map[int]*TeamSummary{
		BlueTeamID: {TeamID: BlueTeamID},
		RedTeamID:  {TeamID: RedTeamID},
	}
	for _, t := range info.Teams {
		if s, ok := summaries[t.TeamID]; ok {
			s.Win = t.Win
		}
	}

	for i := range info.Participants {
		p := &info.Participants[i]
		s, ok := summaries[p.TeamID]
		if !ok {
			return nil, false
		}
		s.Kills += p.Kills
		s.Deaths += p.Deaths
		s.Assists += p.Assists
		s.GoldEarned += p.GoldEarned
		s.TurretKills += p.TurretKills
		s.InhibitorKills += p.InhibitorKills
		s.Players = append(s.Players, TeamPlayer{
			SummonerName: p.SummonerName,
			Champion:     champions.NameFromID(p.ChampionID),
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
			Position:     p.TeamPosition,
		})
	}

	blue, red := summaries[BlueTeamID], summaries[RedTeamID]
	if len(blue.Players) != RosterSize/2 || len(red.Players) != RosterSize/2 {
		return nil, false
	}
	return []TeamSummary{*blue, *red}, true
}

// DurationSeconds derives the match length. Post-11.20 payloads carry seconds
// in gameDuration alongside gameEndTimestamp; older ones carry milliseconds;
// with neither, the longest participant timePlayed stands in.
func DurationSeconds(info *riot.MatchInfo) int64 {
	switch {
	case info.GameDuration != nil && info.GameEndTimestamp != nil:
		return max(*info.GameDuration, 0)
	case info.GameDuration != nil:
		return max(*info.GameDuration, 0) / 1000
	default:
		var longest int64
		for i := range info.Participants {
			if tp := info.Participants[i].TimePlayed; tp != nil && *tp > longest {
				longest = *tp
			}
		}
		return longest
	}
}

// FormatDuration renders seconds as "M:SS".
func FormatDuration(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatTimestamp renders the game start (millis) for display, falling back
// to the creation time when no start timestamp is present.
func FormatTimestamp(startMillis, creationMillis int64) string {
	millis := startMillis
	if millis == 0 {
		millis = creationMillis
	}
	return time.UnixMilli(millis).UTC().Format("2006-01-02 15:04")
}

func namedObjectives(o riot.TeamObjectives) map[string]riot.Objective {
	return map[string]riot.Objective{
		"baron":      o.Baron,
		"champion":   o.Champion,
		"dragon":     o.Dragon,
		"horde":      o.Horde,
		"inhibitor":  o.Inhibitor,
		"riftHerald": o.RiftHerald,
		"tower":      o.Tower,
	}
}

func rawOrEmptyObject(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "{}"
	}
	return string(raw)
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

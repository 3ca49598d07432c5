package aggregator

import (
	"math"
	"strings"

	"github.com/larsmk/riftline/internal/champions"
	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/identity"
	"github.com/larsmk/riftline/internal/riot"
)

// typicalGameSecs anchors the live-game progress bar; games past it just
// read 100%.
const typicalGameSecs = 2100

func buildRank(entries []riot.LeagueEntry) dashboard.RankInfo {
	for _, e := range entries {
		if !strings.EqualFold(e.QueueType, SoloQueue) {
			continue
		}
		return dashboard.RankInfo{
			LeagueID:     e.LeagueID,
			Tier:         e.Tier,
			Division:     e.Rank,
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
			Veteran:      e.Veteran,
			Inactive:     e.Inactive,
			FreshBlood:   e.FreshBlood,
			HotStreak:    e.HotStreak,
			MiniSeries:   e.MiniSeries,
		}
	}
	return dashboard.RankInfo{Tier: UnrankedTier}
}

func buildSummoner(player *identity.Player, basics *dashboard.BasicFields, rank dashboard.RankInfo, history *matchHistory, masteries []dashboard.MasteryEntry) dashboard.SummonerData {
	mainChampion := ""
	if len(masteries) > 0 {
		mainChampion = masteries[0].Name
	}
	return dashboard.SummonerData{
		Puuid:           player.Puuid,
		DisplayName:     player.DisplayName(),
		Level:           basics.Level,
		ProfileIconID:   basics.ProfileIconID,
		ProfileIconPath: basics.ProfileIconPath,
		Rank:            rank,
		WinRate:         winRate(rank.Wins, rank.Losses),
		RecentGames:     history.games,
		FavoriteRole:    history.favoriteRole(),
		MainChampion:    mainChampion,
	}
}

// winRate is the rounded percentage over the ranked entry's season record,
// defined as 0 for a fresh 0/0 entry.
func winRate(wins, losses int) int {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}

func buildMasteries(raw []riot.ChampionMastery) []dashboard.MasteryEntry {
	if len(raw) > MasteryTopCount {
		raw = raw[:MasteryTopCount]
	}
	masteries := make([]dashboard.MasteryEntry, 0, len(raw))
	for i, m := range raw {
		masteries = append(masteries, dashboard.MasteryEntry{
			ChampionID:   m.ChampionID,
			Name:         champions.NameFromID(m.ChampionID),
			Level:        m.ChampionLevel,
			Points:       m.ChampionPoints,
			Icon:         champions.MasteryIcon(i),
			LastPlayTime: m.LastPlayTime,
			TokensEarned: m.TokensEarned,
		})
	}
	return masteries
}

func buildLiveGame(info *riot.CurrentGameInfo, puuid string, history *matchHistory) *dashboard.LiveGame {
	if info == nil {
		return nil
	}
	champion := ""
	if me := info.FindParticipant(puuid); me != nil {
		champion = champions.NameFromID(me.ChampionID)
	}
	return &dashboard.LiveGame{
		GameMode:         info.GameMode,
		Champion:         champion,
		GameTime:         dashboard.FormatDuration(info.GameLength),
		PerformanceScore: history.performanceScore(),
		Progress:         gameProgress(info.GameLength),
	}
}

func gameProgress(gameLengthSecs int64) int {
	if gameLengthSecs <= 0 {
		return 0
	}
	progress := int(gameLengthSecs * 100 / typicalGameSecs)
	if progress > 100 {
		progress = 100
	}
	return progress
}

func buildStats(history *matchHistory) dashboard.Stats {
	return dashboard.Stats{
		TotalGames:  history.games,
		AvgGameTime: history.avgGameTime(),
	}
}

// favoriteRole is the most common lane across the recent matches; ties break
// toward the alphabetically first role so the answer is stable.
func (h *matchHistory) favoriteRole() string {
	role, best := "UNKNOWN", 0
	for r, count := range h.roles {
		if count > best || (count == best && best > 0 && r < role) {
			role, best = r, count
		}
	}
	return role
}

func (h *matchHistory) avgGameTime() string {
	if h.games == 0 {
		return "0:00"
	}
	return dashboard.FormatDuration(h.totalSecs / int64(h.games))
}

// performanceScore maps the recent-match KDA ratio onto a 0-10 scale; a 4.0
// KDA reads as a perfect 10.
func (h *matchHistory) performanceScore() float64 {
	if h.games == 0 {
		return 0
	}
	deaths := h.deaths
	if deaths == 0 {
		deaths = 1
	}
	kda := float64(h.kills+h.assists) / float64(deaths)
	score := kda * 2.5
	if score > 10 {
		score = 10
	}
	return math.Round(score*10) / 10
}

package dashboard

import (
	"database/sql"
	"sync"

	"github.com/larsmk/riftline/internal/riot"
)

// store handles all database operations for the dashboard cache.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// RankInfo is the solo-queue standing shown on the dashboard. When a player
// has no solo-queue entry it holds the zero-valued UNRANKED placeholder.
type RankInfo struct {
	LeagueID     string           `json:"leagueId"`
	Tier         string           `json:"tier"`
	Division     string           `json:"division"`
	LeaguePoints int              `json:"leaguePoints"`
	Wins         int              `json:"wins"`
	Losses       int              `json:"losses"`
	Veteran      bool             `json:"veteran"`
	Inactive     bool             `json:"inactive"`
	FreshBlood   bool             `json:"freshBlood"`
	HotStreak    bool             `json:"hotStreak"`
	MiniSeries   *riot.MiniSeries `json:"miniSeries,omitempty"`
}

// SummonerData is the profile block of the composed dashboard.
type SummonerData struct {
	Puuid           string   `json:"puuid"`
	DisplayName     string   `json:"displayName"`
	Level           int      `json:"level"`
	ProfileIconID   int      `json:"profileIconId"`
	ProfileIconPath string   `json:"profileIconPath"`
	Rank            RankInfo `json:"rank"`
	WinRate         int      `json:"winRate"`
	RecentGames     int      `json:"recentGames"`
	FavoriteRole    string   `json:"favoriteRole"`
	MainChampion    string   `json:"mainChampion"`
}

// TeamPlayer is one roster slot inside a MatchView team summary.
type TeamPlayer struct {
	SummonerName string `json:"summonerName"`
	Champion     string `json:"champion"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Position     string `json:"position"`
}

// TeamSummary aggregates one side of a match for display.
type TeamSummary struct {
	TeamID         int          `json:"teamId"`
	Win            bool         `json:"win"`
	Kills          int          `json:"kills"`
	Deaths         int          `json:"deaths"`
	Assists        int          `json:"assists"`
	GoldEarned     int          `json:"goldEarned"`
	TurretKills    int          `json:"turretKills"`
	InhibitorKills int          `json:"inhibitorKills"`
	Players        []TeamPlayer `json:"players"`
}

// MatchView is the denormalized, display-ready row for one match of a
// player's history. It is derived once at write time and read back verbatim.
type MatchView struct {
	MatchID   string        `json:"matchId"`
	GameID    int64         `json:"gameId"`
	Champion  string        `json:"champion"`
	Result    string        `json:"result"`
	KDA       string        `json:"kda"`
	Duration  string        `json:"duration"`
	GameMode  string        `json:"gameMode"`
	Timestamp string        `json:"timestamp"`
	CS        int           `json:"cs"`
	Teams     []TeamSummary `json:"teams,omitempty"`
}

// MasteryEntry is one champion mastery row, ordered by display rank.
type MasteryEntry struct {
	ChampionID   int64  `json:"championId"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
	Points       int    `json:"points"`
	Icon         string `json:"icon"`
	LastPlayTime int64  `json:"lastPlayTime"`
	TokensEarned int    `json:"tokensEarned"`
}

// LiveGame is present only while the player is in an active game.
type LiveGame struct {
	GameMode         string  `json:"gameMode"`
	Champion         string  `json:"champion"`
	GameTime         string  `json:"gametime"`
	PerformanceScore float64 `json:"performanceScore"`
	Progress         int     `json:"progress"`
}

// Stats is the aggregate block over the fetched recent matches.
type Stats struct {
	TotalGames  int    `json:"totalGames"`
	AvgGameTime string `json:"avgGameTime"`
}

// Data is the full composed dashboard view.
type Data struct {
	Summoner        SummonerData   `json:"summoner"`
	Matches         []MatchView    `json:"matches"`
	ChampionMastery []MasteryEntry `json:"championMastery"`
	LiveGame        *LiveGame      `json:"liveGame,omitempty"`
	Stats           Stats          `json:"stats"`
}

// BasicFields are the slow-moving profile fields covered by the shorter
// summoner-fields TTL.
type BasicFields struct {
	DisplayName     string
	Level           int
	ProfileIconID   int
	ProfileIconPath string
}

// MatchRecord is the normalized header row for one match, shared across all
// players who appear in it. RawJSON preserves the payload verbatim.
type MatchRecord struct {
	MatchID      string
	RawJSON      []byte
	GameID       int64
	GameMode     string
	GameVersion  string
	MapID        int
	QueueID      int
	GameCreation int64
	GameStart    int64
	GameEnd      int64
	DurationSecs int64
}

// ParticipantRow is one player's normalized line in one match.
type ParticipantRow struct {
	ParticipantID               int
	Puuid                       string
	SummonerName                string
	ChampionID                  int64
	ChampionName                string
	TeamID                      int
	TeamPosition                string
	Kills                       int
	Deaths                      int
	Assists                     int
	Win                         bool
	Items                       [7]int
	TotalMinionsKilled          int
	NeutralMinionsKilled        int
	GoldEarned                  int
	TurretKills                 int
	InhibitorKills              int
	TotalDamageDealtToChampions int
	TimePlayed                  int64
	MissionsJSON                string
	PerksJSON                   string
	ChallengesJSON              string
}

// TeamRow is the aggregate outcome row for one side of a match.
type TeamRow struct {
	TeamID int
	Win    bool
}

// BanRow is one champion ban by one team.
type BanRow struct {
	TeamID     int
	PickTurn   int
	ChampionID int
}

// ObjectiveRow is one named objective count (tower, dragon, baron, ...) for
// one team.
type ObjectiveRow struct {
	TeamID int
	Name   string
	First  bool
	Kills  int
}

// MatchBundle is the decomposed form of one match payload: every normalized
// row plus, when the fixed two-team roster could be built and the requesting
// player appears in the match, the denormalized view row.
type MatchBundle struct {
	Record       MatchRecord
	Participants []ParticipantRow
	Teams        []TeamRow
	Bans         []BanRow
	Objectives   []ObjectiveRow
	View         *MatchView
}

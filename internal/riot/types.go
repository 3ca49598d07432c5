package riot

import "encoding/json"

// Account is the account-v1 response used for riot-id to puuid resolution.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the summoner-v4 response; only the basic profile fields are consumed.
type Summoner struct {
	Puuid         string `json:"puuid"`
	SummonerLevel int    `json:"summonerLevel"`
	ProfileIconID int    `json:"profileIconId"`
}

// LeagueEntry is one league-v4 ranked queue entry.
type LeagueEntry struct {
	LeagueID     string      `json:"leagueId"`
	QueueType    string      `json:"queueType"`
	Tier         string      `json:"tier"`
	Rank         string      `json:"rank"`
	LeaguePoints int         `json:"leaguePoints"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	Veteran      bool        `json:"veteran"`
	Inactive     bool        `json:"inactive"`
	FreshBlood   bool        `json:"freshBlood"`
	HotStreak    bool        `json:"hotStreak"`
	MiniSeries   *MiniSeries `json:"miniSeries,omitempty"`
}

type MiniSeries struct {
	Losses   int    `json:"losses"`
	Progress string `json:"progress"`
	Target   int    `json:"target"`
	Wins     int    `json:"wins"`
}

// ChampionMastery is one champion-mastery-v4 entry.
type ChampionMastery struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
	TokensEarned   int   `json:"tokensEarned"`
}

// Match is a full match-v5 payload.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameID             int64         `json:"gameId"`
	GameMode           string        `json:"gameMode"`
	GameVersion        string        `json:"gameVersion"`
	MapID              int           `json:"mapId"`
	QueueID            int           `json:"queueId"`
	GameCreation       int64         `json:"gameCreation"`
	GameStartTimestamp int64         `json:"gameStartTimestamp"`
	GameEndTimestamp   *int64        `json:"gameEndTimestamp,omitempty"`
	GameDuration       *int64        `json:"gameDuration,omitempty"`
	Teams              []Team        `json:"teams"`
	Participants       []Participant `json:"participants"`
}

type Participant struct {
	ParticipantID               int             `json:"participantId"`
	Puuid                       string          `json:"puuid"`
	SummonerName                string          `json:"summonerName"`
	ChampionID                  int64           `json:"championId"`
	ChampionName                string          `json:"championName"`
	TeamID                      int             `json:"teamId"`
	TeamPosition                string          `json:"teamPosition"`
	Kills                       int             `json:"kills"`
	Deaths                      int             `json:"deaths"`
	Assists                     int             `json:"assists"`
	Win                         bool            `json:"win"`
	Item0                       int             `json:"item0"`
	Item1                       int             `json:"item1"`
	Item2                       int             `json:"item2"`
	Item3                       int             `json:"item3"`
	Item4                       int             `json:"item4"`
	Item5                       int             `json:"item5"`
	Item6                       int             `json:"item6"`
	TotalMinionsKilled          int             `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int             `json:"neutralMinionsKilled"`
	GoldEarned                  int             `json:"goldEarned"`
	TurretKills                 int             `json:"turretKills"`
	InhibitorKills              int             `json:"inhibitorKills"`
	TotalDamageDealtToChampions int             `json:"totalDamageDealtToChampions"`
	TimePlayed                  *int64          `json:"timePlayed,omitempty"`
	Missions                    json.RawMessage `json:"missions,omitempty"`
	Perks                       json.RawMessage `json:"perks,omitempty"`
	Challenges                  json.RawMessage `json:"challenges,omitempty"`
}

type Team struct {
	TeamID     int            `json:"teamId"`
	Win        bool           `json:"win"`
	Bans       []Ban          `json:"bans"`
	Objectives TeamObjectives `json:"objectives"`
}

type Ban struct {
	ChampionID int `json:"championId"` // -1 for no ban
	PickTurn   int `json:"pickTurn"`
}

type TeamObjectives struct {
	Baron      Objective `json:"baron"`
	Champion   Objective `json:"champion"`
	Dragon     Objective `json:"dragon"`
	Horde      Objective `json:"horde"`
	Inhibitor  Objective `json:"inhibitor"`
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

// CurrentGameInfo is a spectator-v5 active game snapshot.
type CurrentGameInfo struct {
	GameID          int64                    `json:"gameId"`
	GameMode        string                   `json:"gameMode"`
	GameType        string                   `json:"gameType"`
	MapID           int                      `json:"mapId"`
	GameLength      int64                    `json:"gameLength"`
	GameStartTime   int64                    `json:"gameStartTime"`
	PlatformID      string                   `json:"platformId"`
	Participants    []CurrentGameParticipant `json:"participants"`
	BannedChampions []CurrentGameBan         `json:"bannedChampions"`
}

type CurrentGameParticipant struct {
	Puuid      string `json:"puuid"`
	TeamID     int    `json:"teamId"`
	ChampionID int64  `json:"championId"`
	Spell1ID   int64  `json:"spell1Id"`
	Spell2ID   int64  `json:"spell2Id"`
	RiotID     string `json:"riotId"`
	Bot        bool   `json:"bot"`
}

type CurrentGameBan struct {
	ChampionID int64 `json:"championId"` // -1 for no ban
	TeamID     int   `json:"teamId"`
	PickTurn   int   `json:"pickTurn"`
}

// FindParticipant returns the participant entry for puuid, or nil when the
// player does not appear in the match.
func (m *Match) FindParticipant(puuid string) *Participant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].Puuid == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}

// FindParticipant returns the live-game participant entry for puuid, if present.
func (g *CurrentGameInfo) FindParticipant(puuid string) *CurrentGameParticipant {
	for i := range g.Participants {
		if g.Participants[i].Puuid == puuid {
			return &g.Participants[i]
		}
	}
	return nil
}

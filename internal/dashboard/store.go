package dashboard

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/larsmk/riftline/internal/config"
	"github.com/larsmk/riftline/internal/riot"
)

// New creates a new dashboard Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) GetCachedDashboard(puuid string, now time.Time) (*Data, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summoner, updatedAt, err := s.scanSummoner(puuid)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read summoner row: %w", err)
	}
	if now.Unix()-updatedAt > int64(config.DashboardTTL.Seconds()) {
		log.Debug("Cached dashboard is stale", "puuid", puuid, "age_secs", now.Unix()-updatedAt)
		return nil, false, nil
	}

	stats, err := s.readStats(puuid, summoner.RecentGames)
	if err != nil {
		return nil, false, err
	}
	masteries, err := s.readMasteries(puuid)
	if err != nil {
		return nil, false, err
	}
	matches, err := s.GetMatchViews(puuid)
	if err != nil {
		return nil, false, err
	}
	live, ok, err := s.GetLiveGame(puuid)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		live = nil
	}

	return &Data{
		Summoner:        *summoner,
		Matches:         matches,
		ChampionMastery: masteries,
		LiveGame:        live,
		Stats:           *stats,
	}, true, nil
}

func (s *store) GetSummonerBasics(puuid string, now time.Time) (*BasicFields, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		basics    BasicFields
		updatedAt int64
	)
	err := s.db.QueryRow(`
		SELECT display_name, level, profile_icon_id, profile_icon_path, updated_at
		FROM summoners WHERE puuid = ?
	`, puuid).Scan(&basics.DisplayName, &basics.Level, &basics.ProfileIconID, &basics.ProfileIconPath, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read summoner basics: %w", err)
	}
	if now.Unix()-updatedAt > int64(config.SummonerFieldsTTL.Seconds()) {
		return nil, false, nil
	}
	return &basics, true, nil
}

func (s *store) scanSummoner(puuid string) (*SummonerData, int64, error) {
	var (
		summoner       SummonerData
		miniSeriesJSON sql.NullString
		updatedAt      int64
	)
	err := s.db.QueryRow(`
		SELECT puuid, display_name, level, profile_icon_id, profile_icon_path,
			league_id, tier, division, league_points, wins, losses,
			veteran, inactive, fresh_blood, hot_streak, mini_series_json,
			win_rate, recent_games, favorite_role, main_champion, updated_at
		FROM summoners WHERE puuid = ?
	`, puuid).Scan(
		&summoner.Puuid, &summoner.DisplayName, &summoner.Level,
		&summoner.ProfileIconID, &summoner.ProfileIconPath,
		&summoner.Rank.LeagueID, &summoner.Rank.Tier, &summoner.Rank.Division,
		&summoner.Rank.LeaguePoints, &summoner.Rank.Wins, &summoner.Rank.Losses,
		&summoner.Rank.Veteran, &summoner.Rank.Inactive, &summoner.Rank.FreshBlood,
		&summoner.Rank.HotStreak, &miniSeriesJSON,
		&summoner.WinRate, &summoner.RecentGames, &summoner.FavoriteRole,
		&summoner.MainChampion, &updatedAt,
	)
	if err != nil {
		return nil, 0, err
	}
	if miniSeriesJSON.Valid && miniSeriesJSON.String != "" {
		var series riot.MiniSeries
		if err := json.Unmarshal([]byte(miniSeriesJSON.String), &series); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal mini_series_json for %s: %w", puuid, err)
		}
		summoner.Rank.MiniSeries = &series
	}
	return &summoner, updatedAt, nil
}

func (s *store) readStats(puuid string, recentGames int) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(`
		SELECT total_games, avg_game_time FROM stats WHERE puuid = ?
	`, puuid).Scan(&stats.TotalGames, &stats.AvgGameTime)
	if err == sql.ErrNoRows {
		// A fresh profile can exist before any stats row does.
		return &Stats{TotalGames: recentGames, AvgGameTime: "0:00"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats row: %w", err)
	}
	return &stats, nil
}

func (s *store) readMasteries(puuid string) ([]MasteryEntry, error) {
	rows, err := s.db.Query(`
		SELECT champion_id, name, level, points, icon, last_play_time, tokens_earned
		FROM champion_mastery WHERE puuid = ? ORDER BY rank_order ASC
	`, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to query masteries: %w", err)
	}
	defer rows.Close()

	var masteries []MasteryEntry
	for rows.Next() {
		var m MasteryEntry
		if err := rows.Scan(&m.ChampionID, &m.Name, &m.Level, &m.Points, &m.Icon, &m.LastPlayTime, &m.TokensEarned); err != nil {
			return nil, fmt.Errorf("failed to scan mastery row: %w", err)
		}
		masteries = append(masteries, m)
	}
	return masteries, rows.Err()
}

func (s *store) GetMatchViews(puuid string) ([]MatchView, error) {
	rows, err := s.db.Query(`
		SELECT match_id, game_id, champion, result, kda, duration, game_mode, timestamp, cs, teams_json
		FROM dashboard_matches WHERE puuid = ? ORDER BY timestamp DESC
	`, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard matches: %w", err)
	}
	defer rows.Close()

	var views []MatchView
	for rows.Next() {
		var (
			view      MatchView
			teamsJSON sql.NullString
		)
		err := rows.Scan(&view.MatchID, &view.GameID, &view.Champion, &view.Result,
			&view.KDA, &view.Duration, &view.GameMode, &view.Timestamp, &view.CS, &teamsJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dashboard match row: %w", err)
		}
		if teamsJSON.Valid && teamsJSON.String != "" {
			if err := json.Unmarshal([]byte(teamsJSON.String), &view.Teams); err != nil {
				return nil, fmt.Errorf("failed to unmarshal teams_json for %s: %w", view.MatchID, err)
			}
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (s *store) GetLiveGame(puuid string) (*LiveGame, bool, error) {
	var live LiveGame
	err := s.db.QueryRow(`
		SELECT game_mode, champion, game_time, performance_score, progress
		FROM live_game WHERE puuid = ?
	`, puuid).Scan(&live.GameMode, &live.Champion, &live.GameTime, &live.PerformanceScore, &live.Progress)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read live game row: %w", err)
	}
	return &live, true, nil
}

func (s *store) CountMatchRows(matchID string) (int, int, error) {
	var matches, participants int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM matches WHERE match_id = ?`, matchID).Scan(&matches); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM participants WHERE match_id = ?`, matchID).Scan(&participants); err != nil {
		return 0, 0, err
	}
	return matches, participants, nil
}

// SaveDashboard commits the entire refresh atomically. The summoner, stats,
// mastery set, live-game presence and every match bundle land in one
// transaction; any failure rolls the whole refresh back.
func (s *store) SaveDashboard(puuid string, data *Data, bundles []*MatchBundle, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin dashboard transaction: %w", err)
	}
	defer tx.Rollback()

	ts := now.Unix()
	if err := upsertSummoner(tx, puuid, &data.Summoner, ts); err != nil {
		return err
	}
	if err := upsertStats(tx, puuid, &data.Stats, ts); err != nil {
		return err
	}
	if err := replaceMasteries(tx, puuid, data.ChampionMastery, ts); err != nil {
		return err
	}
	if err := upsertLiveGame(tx, puuid, data.LiveGame, ts); err != nil {
		return err
	}
	for _, bundle := range bundles {
		if err := upsertMatchBundle(tx, puuid, bundle, ts); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dashboard transaction: %w", err)
	}
	return nil
}

func upsertSummoner(tx *sql.Tx, puuid string, summoner *SummonerData, ts int64) error {
	var miniSeriesJSON any
	if summoner.Rank.MiniSeries != nil {
		encoded, err := json.Marshal(summoner.Rank.MiniSeries)
		if err != nil {
			return fmt.Errorf("failed to marshal mini series: %w", err)
		}
		miniSeriesJSON = string(encoded)
	}

	_, err := tx.Exec(`
		INSERT INTO summoners (
			puuid, display_name, level, profile_icon_id, profile_icon_path,
			league_id, tier, division, league_points, wins, losses,
			veteran, inactive, fresh_blood, hot_streak, mini_series_json,
			win_rate, recent_games, favorite_role, main_champion, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			display_name = excluded.display_name,
			level = excluded.level,
			profile_icon_id = excluded.profile_icon_id,
			profile_icon_path = excluded.profile_icon_path,
			league_id = excluded.league_id,
			tier = excluded.tier,
			division = excluded.division,
			league_points = excluded.league_points,
			wins = excluded.wins,
			losses = excluded.losses,
			veteran = excluded.veteran,
			inactive = excluded.inactive,
			fresh_blood = excluded.fresh_blood,
			hot_streak = excluded.hot_streak,
			mini_series_json = excluded.mini_series_json,
			win_rate = excluded.win_rate,
			recent_games = excluded.recent_games,
			favorite_role = excluded.favorite_role,
			main_champion = excluded.main_champion,
			updated_at = excluded.updated_at
	`, puuid, summoner.DisplayName, summoner.Level, summoner.ProfileIconID, summoner.ProfileIconPath,
		summoner.Rank.LeagueID, summoner.Rank.Tier, summoner.Rank.Division, summoner.Rank.LeaguePoints,
		summoner.Rank.Wins, summoner.Rank.Losses, summoner.Rank.Veteran, summoner.Rank.Inactive,
		summoner.Rank.FreshBlood, summoner.Rank.HotStreak, miniSeriesJSON,
		summoner.WinRate, summoner.RecentGames, summoner.FavoriteRole, summoner.MainChampion, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert summoner %s: %w", puuid, err)
	}
	return nil
}

func upsertStats(tx *sql.Tx, puuid string, stats *Stats, ts int64) error {
	_, err := tx.Exec(`
		INSERT INTO stats (puuid, total_games, avg_game_time, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			total_games = excluded.total_games,
			avg_game_time = excluded.avg_game_time,
			updated_at = excluded.updated_at
	`, puuid, stats.TotalGames, stats.AvgGameTime, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert stats for %s: %w", puuid, err)
	}
	return nil
}

// replaceMasteries deletes the full set before reinserting: the set has no
// identity across refreshes beyond its display order, and stale rows beyond
// the new top-N must not survive.
func replaceMasteries(tx *sql.Tx, puuid string, masteries []MasteryEntry, ts int64) error {
	if _, err := tx.Exec(`DELETE FROM champion_mastery WHERE puuid = ?`, puuid); err != nil {
		return fmt.Errorf("failed to delete old masteries for %s: %w", puuid, err)
	}
	for i, m := range masteries {
		_, err := tx.Exec(`
			INSERT INTO champion_mastery (
				puuid, rank_order, champion_id, name, level, points, icon,
				last_play_time, tokens_earned, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, puuid, i, m.ChampionID, m.Name, m.Level, m.Points, m.Icon, m.LastPlayTime, m.TokensEarned, ts)
		if err != nil {
			return fmt.Errorf("failed to insert mastery row %d for %s: %w", i, puuid, err)
		}
	}
	return nil
}

func upsertLiveGame(tx *sql.Tx, puuid string, live *LiveGame, ts int64) error {
	if live == nil {
		if _, err := tx.Exec(`DELETE FROM live_game WHERE puuid = ?`, puuid); err != nil {
			return fmt.Errorf("failed to delete live game for %s: %w", puuid, err)
		}
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO live_game (puuid, game_mode, champion, game_time, performance_score, progress, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			game_mode = excluded.game_mode,
			champion = excluded.champion,
			game_time = excluded.game_time,
			performance_score = excluded.performance_score,
			progress = excluded.progress,
			updated_at = excluded.updated_at
	`, puuid, live.GameMode, live.Champion, live.GameTime, live.PerformanceScore, live.Progress, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert live game for %s: %w", puuid, err)
	}
	return nil
}

func upsertMatchBundle(tx *sql.Tx, puuid string, bundle *MatchBundle, ts int64) error {
	r := &bundle.Record
	_, err := tx.Exec(`
		INSERT INTO matches (
			match_id, raw_json, game_id, game_mode, game_version, map_id, queue_id,
			game_creation, game_start, game_end, duration_secs, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			raw_json = excluded.raw_json,
			game_id = excluded.game_id,
			game_mode = excluded.game_mode,
			game_version = excluded.game_version,
			map_id = excluded.map_id,
			queue_id = excluded.queue_id,
			game_creation = excluded.game_creation,
			game_start = excluded.game_start,
			game_end = excluded.game_end,
			duration_secs = excluded.duration_secs,
			updated_at = excluded.updated_at
	`, r.MatchID, string(r.RawJSON), r.GameID, r.GameMode, r.GameVersion, r.MapID, r.QueueID,
		r.GameCreation, r.GameStart, r.GameEnd, r.DurationSecs, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", r.MatchID, err)
	}

	for _, p := range bundle.Participants {
		_, err := tx.Exec(`
			INSERT INTO participants (
				match_id, participant_id, puuid, summoner_name, champion_id, champion_name,
				team_id, team_position, kills, deaths, assists, win,
				item0, item1, item2, item3, item4, item5, item6,
				total_minions_killed, neutral_minions_killed, gold_earned,
				turret_kills, inhibitor_kills, total_damage_dealt_to_champions,
				time_played, missions_json, perks_json, challenges_json
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(match_id, participant_id) DO UPDATE SET
				puuid = excluded.puuid,
				summoner_name = excluded.summoner_name,
				champion_id = excluded.champion_id,
				champion_name = excluded.champion_name,
				team_id = excluded.team_id,
				team_position = excluded.team_position,
				kills = excluded.kills,
				deaths = excluded.deaths,
				assists = excluded.assists,
				win = excluded.win,
				item0 = excluded.item0, item1 = excluded.item1, item2 = excluded.item2,
				item3 = excluded.item3, item4 = excluded.item4, item5 = excluded.item5,
				item6 = excluded.item6,
				total_minions_killed = excluded.total_minions_killed,
				neutral_minions_killed = excluded.neutral_minions_killed,
				gold_earned = excluded.gold_earned,
				turret_kills = excluded.turret_kills,
				inhibitor_kills = excluded.inhibitor_kills,
				total_damage_dealt_to_champions = excluded.total_damage_dealt_to_champions,
				time_played = excluded.time_played,
				missions_json = excluded.missions_json,
				perks_json = excluded.perks_json,
				challenges_json = excluded.challenges_json
		`, r.MatchID, p.ParticipantID, p.Puuid, p.SummonerName, p.ChampionID, p.ChampionName,
			p.TeamID, p.TeamPosition, p.Kills, p.Deaths, p.Assists, p.Win,
			p.Items[0], p.Items[1], p.Items[2], p.Items[3], p.Items[4], p.Items[5], p.Items[6],
			p.TotalMinionsKilled, p.NeutralMinionsKilled, p.GoldEarned,
			p.TurretKills, p.InhibitorKills, p.TotalDamageDealtToChampions,
			p.TimePlayed, p.MissionsJSON, p.PerksJSON, p.ChallengesJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert participant %d of %s: %w", p.ParticipantID, r.MatchID, err)
		}
	}

	for _, t := range bundle.Teams {
		_, err := tx.Exec(`
			INSERT INTO teams (match_id, team_id, win) VALUES (?, ?, ?)
			ON CONFLICT(match_id, team_id) DO UPDATE SET win = excluded.win
		`, r.MatchID, t.TeamID, t.Win)
		if err != nil {
			return fmt.Errorf("failed to upsert team %d of %s: %w", t.TeamID, r.MatchID, err)
		}
	}
	for _, b := range bundle.Bans {
		_, err := tx.Exec(`
			INSERT INTO team_bans (match_id, team_id, pick_turn, champion_id) VALUES (?, ?, ?, ?)
			ON CONFLICT(match_id, team_id, pick_turn) DO UPDATE SET champion_id = excluded.champion_id
		`, r.MatchID, b.TeamID, b.PickTurn, b.ChampionID)
		if err != nil {
			return fmt.Errorf("failed to upsert ban (team %d, turn %d) of %s: %w", b.TeamID, b.PickTurn, r.MatchID, err)
		}
	}
	for _, o := range bundle.Objectives {
		_, err := tx.Exec(`
			INSERT INTO team_objectives (match_id, team_id, name, first, kills) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(match_id, team_id, name) DO UPDATE SET
				first = excluded.first,
				kills = excluded.kills
		`, r.MatchID, o.TeamID, o.Name, o.First, o.Kills)
		if err != nil {
			return fmt.Errorf("failed to upsert objective %s (team %d) of %s: %w", o.Name, o.TeamID, r.MatchID, err)
		}
	}

	if bundle.View == nil {
		return nil
	}
	view := bundle.View
	var teamsJSON any
	if len(view.Teams) > 0 {
		encoded, err := json.Marshal(view.Teams)
		if err != nil {
			return fmt.Errorf("failed to marshal teams for %s: %w", r.MatchID, err)
		}
		teamsJSON = string(encoded)
	}
	_, err = tx.Exec(`
		INSERT INTO dashboard_matches (
			puuid, match_id, game_id, champion, result, kda, duration,
			game_mode, timestamp, cs, teams_json, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid, match_id) DO UPDATE SET
			game_id = excluded.game_id,
			champion = excluded.champion,
			result = excluded.result,
			kda = excluded.kda,
			duration = excluded.duration,
			game_mode = excluded.game_mode,
			timestamp = excluded.timestamp,
			cs = excluded.cs,
			teams_json = excluded.teams_json,
			updated_at = excluded.updated_at
	`, puuid, view.MatchID, view.GameID, view.Champion, view.Result, view.KDA, view.Duration,
		view.GameMode, view.Timestamp, view.CS, teamsJSON, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert dashboard match %s for %s: %w", view.MatchID, puuid, err)
	}
	return nil
}

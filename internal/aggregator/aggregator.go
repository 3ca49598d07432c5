package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/larsmk/riftline/internal/assets"
	"github.com/larsmk/riftline/internal/config"
	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/identity"
	"github.com/larsmk/riftline/internal/metrics"
	"github.com/larsmk/riftline/internal/riot"
)

var _ Service = (*Aggregator)(nil)

// New creates a new Aggregator.
func New(store dashboard.Store, riotClient riot.Client, resolver IdentityResolver, assetResolver assets.Resolver, m metrics.Metrics, counters metrics.MetricsStore) *Aggregator {
	return &Aggregator{
		store:    store,
		riot:     riotClient,
		identity: resolver,
		assets:   assetResolver,
		metrics:  m,
		counters: counters,
		locks:    newPlayerLocks(),
		now:      time.Now,
	}
}

// GetDashboard resolves the player, serves the cached dashboard when it is
// fresh enough, and otherwise runs a full refresh. Refreshes for the same
// player serialize on a per-player lock; the second caller finds the fresh
// cache the first one just wrote.
func (a *Aggregator) GetDashboard(ctx context.Context, name string, forceRefresh bool) (*dashboard.Data, bool, error) {
	player, err := a.identity.Resolve(ctx, name)
	if err != nil {
		return nil, false, err
	}

	a.locks.lock(player.Puuid)
	defer a.locks.unlock(player.Puuid)

	now := a.now()
	if !forceRefresh {
		data, ok, err := a.store.GetCachedDashboard(player.Puuid, now)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read dashboard cache: %w", err)
		}
		if ok {
			log.Debug("Serving dashboard from cache", "puuid", player.Puuid)
			a.metrics.IncCacheHits()
			a.counters.Increment(metrics.KeyCacheHits)
			return data, true, nil
		}
		a.metrics.IncCacheMisses()
		a.counters.Increment(metrics.KeyCacheMisses)
	}

	data, err := a.refresh(ctx, player, now)
	if err != nil {
		a.metrics.IncRefreshFailures()
		a.counters.Increment(metrics.KeyRefreshFailures)
		return nil, false, err
	}
	return data, false, nil
}

// GetLiveGame reads the stored live-game snapshot without refreshing.
func (a *Aggregator) GetLiveGame(ctx context.Context, name string) (*dashboard.LiveGame, bool, error) {
	player, err := a.identity.Resolve(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return a.store.GetLiveGame(player.Puuid)
}

// GetMatchViews reads the stored match history without refreshing.
func (a *Aggregator) GetMatchViews(ctx context.Context, name string) ([]dashboard.MatchView, error) {
	player, err := a.identity.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.store.GetMatchViews(player.Puuid)
}

func (a *Aggregator) refresh(ctx context.Context, player *identity.Player, now time.Time) (*dashboard.Data, error) {
	start := time.Now()
	a.metrics.IncRefreshRuns()
	a.counters.Increment(metrics.KeyRefreshRuns)
	log.Info("Refreshing dashboard", "puuid", player.Puuid, "name", player.DisplayName())

	basics, err := a.fetchBasics(ctx, player.Puuid, now)
	if err != nil {
		return nil, err
	}

	// The profile endpoints are independent of each other; only the match
	// loop below has ordering constraints.
	var (
		entries      []riot.LeagueEntry
		matchIDs     []string
		topMasteries []riot.ChampionMastery
		liveInfo     *riot.CurrentGameInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = a.riot.GetLeagueEntries(gctx, player.Puuid)
		return err
	})
	g.Go(func() error {
		var err error
		matchIDs, err = a.riot.GetRankedMatchIDs(gctx, player.Puuid, config.RecentMatchCount)
		return err
	})
	g.Go(func() error {
		var err error
		topMasteries, err = a.riot.GetTopMasteries(gctx, player.Puuid, MasteryTopCount)
		return err
	})
	g.Go(func() error {
		var err error
		liveInfo, err = a.riot.GetActiveGame(gctx, player.Puuid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch profile data: %w", err)
	}

	bundles, history, err := a.fetchMatches(ctx, player.Puuid, matchIDs)
	if err != nil {
		return nil, err
	}

	masteries := buildMasteries(topMasteries)
	data := &dashboard.Data{
		Summoner:        buildSummoner(player, basics, buildRank(entries), history, masteries),
		ChampionMastery: masteries,
		LiveGame:        buildLiveGame(liveInfo, player.Puuid, history),
		Stats:           buildStats(history),
	}
	for _, bundle := range bundles {
		if bundle.View != nil {
			data.Matches = append(data.Matches, *bundle.View)
		}
	}

	if err := a.store.SaveDashboard(player.Puuid, data, bundles, now); err != nil {
		return nil, fmt.Errorf("failed to save dashboard: %w", err)
	}

	duration := time.Since(start)
	a.metrics.ObserveRefreshDuration(duration.Seconds())
	log.Info("Dashboard refreshed", "puuid", player.Puuid, "matches", len(bundles), "duration_ms", duration.Milliseconds())
	return data, nil
}

// fetchBasics reuses the slow-moving level/icon fields when their shorter TTL
// still covers them, saving two remote calls per refresh.
func (a *Aggregator) fetchBasics(ctx context.Context, puuid string, now time.Time) (*dashboard.BasicFields, error) {
	cached, ok, err := a.store.GetSummonerBasics(puuid, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read summoner basics: %w", err)
	}
	if ok {
		log.Debug("Reusing cached summoner fields", "puuid", puuid)
		return cached, nil
	}

	summoner, err := a.riot.GetSummonerByPUUID(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summoner profile: %w", err)
	}
	iconPath, err := a.assets.ProfileIconPath(ctx, summoner.ProfileIconID)
	if err != nil {
		log.Warn("Failed to resolve profile icon", "iconID", summoner.ProfileIconID, "error", err)
		iconPath = ""
	}
	return &dashboard.BasicFields{
		Level:           summoner.SummonerLevel,
		ProfileIconID:   summoner.ProfileIconID,
		ProfileIconPath: iconPath,
	}, nil
}

// fetchMatches retrieves each match payload and decomposes it immediately.
// The loop stays sequential: the id list arrives newest first and the view
// rows inherit that order.
func (a *Aggregator) fetchMatches(ctx context.Context, puuid string, matchIDs []string) ([]*dashboard.MatchBundle, *matchHistory, error) {
	history := newMatchHistory()
	bundles := make([]*dashboard.MatchBundle, 0, len(matchIDs))
	for _, id := range matchIDs {
		match, raw, err := a.riot.GetMatch(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch match %s: %w", id, err)
		}
		bundle := dashboard.Decompose(match, raw, puuid)
		bundles = append(bundles, bundle)

		me := match.FindParticipant(puuid)
		if me == nil {
			log.Warn("Player absent from fetched match", "matchID", id, "puuid", puuid)
			continue
		}
		history.add(me, dashboard.DurationSeconds(&match.Info))
		if bundle.View == nil {
			log.Debug("Stored match without view row", "matchID", id, "participants", len(match.Info.Participants))
		}
	}
	return bundles, history, nil
}

package aggregator

import (
	"time"

	"github.com/larsmk/riftline/internal/assets"
	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/metrics"
	"github.com/larsmk/riftline/internal/riot"
)

// SoloQueue is the ranked queue the dashboard standing is taken from.
const SoloQueue = "RANKED_SOLO_5x5"

// UnrankedTier is the placeholder tier for players with no solo-queue entry.
const UnrankedTier = "UNRANKED"

// MasteryTopCount is how many mastery entries the dashboard shows.
const MasteryTopCount = 4

// Aggregator runs the cache-or-refresh pipeline: resolve identity, serve the
// cached dashboard when fresh enough, otherwise fetch every remote endpoint,
// decompose the match payloads and commit the lot in one transaction.
type Aggregator struct {
	store    dashboard.Store
	riot     riot.Client
	identity IdentityResolver
	assets   assets.Resolver
	metrics  metrics.Metrics
	counters metrics.MetricsStore
	locks    *playerLocks
	now      func() time.Time
}

// matchHistory accumulates the player's own lines across the fetched matches;
// the derived summoner fields (favorite role, average game time, performance)
// come out of it.
type matchHistory struct {
	games     int
	totalSecs int64
	kills     int
	deaths    int
	assists   int
	roles     map[string]int
}

func newMatchHistory() *matchHistory {
	return &matchHistory{roles: make(map[string]int)}
}

func (h *matchHistory) add(p *riot.Participant, durationSecs int64) {
	h.games++
	h.totalSecs += durationSecs
	h.kills += p.Kills
	h.deaths += p.Deaths
	h.assists += p.Assists
	if p.TeamPosition != "" {
		h.roles[p.TeamPosition]++
	}
}

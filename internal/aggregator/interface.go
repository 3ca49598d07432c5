package aggregator

import (
	"context"

	"github.com/larsmk/riftline/internal/dashboard"
	"github.com/larsmk/riftline/internal/identity"
)

// Service defines the interface for composing and caching dashboards.
type Service interface {
	// GetDashboard returns the composed dashboard for a display name,
	// refreshing from the remote API when the cached copy is stale or
	// forceRefresh is set. The bool reports whether the cache served it.
	GetDashboard(ctx context.Context, name string, forceRefresh bool) (*dashboard.Data, bool, error)

	// GetLiveGame returns the stored live-game snapshot for a display name.
	GetLiveGame(ctx context.Context, name string) (*dashboard.LiveGame, bool, error)

	// GetMatchViews returns the stored match history for a display name,
	// newest first, without touching the remote API.
	GetMatchViews(ctx context.Context, name string) ([]dashboard.MatchView, error)
}

// IdentityResolver maps display names (or the active-player sentinel) to
// resolved players.
type IdentityResolver interface {
	Resolve(ctx context.Context, name string) (*identity.Player, error)
}

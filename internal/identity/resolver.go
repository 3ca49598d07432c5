package identity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/larsmk/riftline/internal/lcu"
	"github.com/larsmk/riftline/internal/riot"
	"github.com/vmihailenco/msgpack/v5"
)

// ActivePlayer is the sentinel display name meaning "whoever is signed in to
// the local League client".
const ActivePlayer = "me"

// CacheFileName is the durable identity record inside the data dir. A puuid
// never changes once resolved, so the record carries no TTL.
const CacheFileName = "identity.bin"

// Resolver maps display names to puuids, going through the local game client
// for the active player and keeping the result on disk.
type Resolver struct {
	riot      riot.Client
	lcu       lcu.Client
	cachePath string
}

type cachedIdentity struct {
	Puuid    string `msgpack:"puuid"`
	GameName string `msgpack:"game_name"`
	TagLine  string `msgpack:"tag_line"`
}

// Player is a resolved identity: the stable puuid plus the riot id it was
// resolved from.
type Player struct {
	Puuid    string
	GameName string
	TagLine  string
}

// DisplayName renders the riot id in its canonical "Name#Tag" form.
func (p *Player) DisplayName() string {
	return p.GameName + "#" + p.TagLine
}

// NewResolver creates a Resolver persisting its identity cache under dataDir.
func NewResolver(riotClient riot.Client, lcuClient lcu.Client, dataDir string) *Resolver {
	return &Resolver{
		riot:      riotClient,
		lcu:       lcuClient,
		cachePath: filepath.Join(dataDir, CacheFileName),
	}
}

// Resolve maps a display name to a Player. The sentinel ActivePlayer (or an
// empty name) resolves the locally signed-in account; an explicit "Name#Tag"
// resolves directly against the remote identity endpoint.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Player, error) {
	if name == "" || strings.EqualFold(name, ActivePlayer) {
		return r.resolveActivePlayer(ctx)
	}

	gameName, tagLine, ok := strings.Cut(name, "#")
	if !ok {
		return nil, fmt.Errorf("invalid summoner name %q: expected Name#Tag", name)
	}
	account, err := r.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", name, err)
	}
	return &Player{Puuid: account.Puuid, GameName: account.GameName, TagLine: account.TagLine}, nil
}

func (r *Resolver) resolveActivePlayer(ctx context.Context) (*Player, error) {
	// The on-disk record short-circuits both the local client and the remote
	// round-trip entirely.
	if cached, err := r.loadCache(); err == nil {
		log.Debug("Resolved active player from identity cache", "gameName", cached.GameName)
		return &Player{Puuid: cached.Puuid, GameName: cached.GameName, TagLine: cached.TagLine}, nil
	}

	account, err := r.lcu.GetActiveAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active account from league client: %w", err)
	}

	resolved, err := r.riot.GetAccountByRiotID(ctx, account.GameName, account.TagLine)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active player %s#%s: %w", account.GameName, account.TagLine, err)
	}

	if err := r.saveCache(cachedIdentity{
		Puuid:    resolved.Puuid,
		GameName: resolved.GameName,
		TagLine:  resolved.TagLine,
	}); err != nil {
		log.Warn("Failed to persist identity cache", "error", err)
	}
	return &Player{Puuid: resolved.Puuid, GameName: resolved.GameName, TagLine: resolved.TagLine}, nil
}

func (r *Resolver) loadCache() (*cachedIdentity, error) {
	data, err := os.ReadFile(r.cachePath)
	if err != nil {
		return nil, err
	}
	var cached cachedIdentity
	if err := msgpack.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode identity cache: %w", err)
	}
	if cached.Puuid == "" {
		return nil, fmt.Errorf("identity cache holds no puuid")
	}
	return &cached, nil
}

func (r *Resolver) saveCache(record cachedIdentity) error {
	data, err := msgpack.Marshal(record)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.cachePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.cachePath, data, 0o644)
}

package riot

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/larsmk/riftline/internal/config"
)

// APIClient talks to the Riot data API through a signing proxy: every call is
// a POST of {endpoint, region} authenticated with an HMAC-SHA256 signature.
type APIClient struct {
	httpClient     *http.Client
	BaseURL        string
	clientID       string
	clientSecret   string
	platformRegion string
	matchRegion    string
}

// NewClient creates a new Riot proxy client.
func NewClient(cfg config.RiotConfig) Client {
	return &APIClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		BaseURL:        cfg.ProxyURL,
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		platformRegion: cfg.PlatformRegion,
		matchRegion:    cfg.MatchRegion,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// APIError carries the status, body and endpoint of a failed remote call.
type APIError struct {
	Status   int
	Body     string
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api error %d on %s: %s", e.Status, e.Endpoint, e.Body)
}

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

func (c *APIClient) sign(endpoint, body string, ts int64) string {
	canonical := fmt.Sprintf("POST|%s|%d|%s", endpoint, ts, body)
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// fetchRaw posts the signed {endpoint, region} payload and returns the raw body.
func (c *APIClient) fetchRaw(ctx context.Context, endpoint, region string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"endpoint": endpoint, "region": region})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	ts := time.Now().Unix()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-timestamp", fmt.Sprintf("%d", ts))
	req.Header.Set("x-signature", c.sign(endpoint, string(payload), ts))

	log.Debug("Requesting Riot endpoint", "endpoint", endpoint, "region", region)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body), Endpoint: endpoint}
	}
	return body, nil
}

func fetchJSON[T any](ctx context.Context, c *APIClient, endpoint, region string) (T, error) {
	var out T
	body, err := c.fetchRaw(ctx, endpoint, region)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to decode response for %s: %w", endpoint, err)
	}
	return out, nil
}

func (c *APIClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	endpoint := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))
	account, err := fetchJSON[Account](ctx, c, endpoint, c.matchRegion)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *APIClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	endpoint := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", puuid)
	summoner, err := fetchJSON[Summoner](ctx, c, endpoint, c.platformRegion)
	if err != nil {
		return nil, err
	}
	return &summoner, nil
}

func (c *APIClient) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	endpoint := fmt.Sprintf("/lol/league/v4/entries/by-puuid/%s", puuid)
	return fetchJSON[[]LeagueEntry](ctx, c, endpoint, c.platformRegion)
}

func (c *APIClient) GetRankedMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	endpoint := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?type=ranked&start=0&count=%d", puuid, count)
	return fetchJSON[[]string](ctx, c, endpoint, c.matchRegion)
}

func (c *APIClient) GetMatch(ctx context.Context, matchID string) (*Match, []byte, error) {
	endpoint := fmt.Sprintf("/lol/match/v5/matches/%s", matchID)
	body, err := c.fetchRaw(ctx, endpoint, c.matchRegion)
	if err != nil {
		return nil, nil, err
	}
	var match Match
	if err := json.Unmarshal(body, &match); err != nil {
		return nil, nil, fmt.Errorf("failed to decode match %s: %w", matchID, err)
	}
	return &match, body, nil
}

func (c *APIClient) GetTopMasteries(ctx context.Context, puuid string, count int) ([]ChampionMastery, error) {
	endpoint := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d", puuid, count)
	return fetchJSON[[]ChampionMastery](ctx, c, endpoint, c.platformRegion)
}

func (c *APIClient) GetActiveGame(ctx context.Context, puuid string) (*CurrentGameInfo, error) {
	endpoint := fmt.Sprintf("/lol/spectator/v5/active-games/by-summoner/%s", puuid)
	body, err := c.fetchRaw(ctx, endpoint, c.platformRegion)
	if err != nil {
		// Not being in a game is an ordinary absence, not a failure.
		if apiErr, ok := err.(*APIError); ok && isNoActiveGame(apiErr) {
			return nil, nil
		}
		return nil, err
	}
	var game CurrentGameInfo
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("failed to decode active game: %w", err)
	}
	return &game, nil
}

func isNoActiveGame(err *APIError) bool {
	if err.Status == http.StatusNotFound {
		return true
	}
	body := strings.ToLower(err.Body)
	return strings.Contains(body, "spectator") && strings.Contains(body, "not found")
}

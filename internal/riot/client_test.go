package riot_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/larsmk/riftline/internal/config"
	"github.com/larsmk/riftline/internal/riot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proxyRequest struct {
	Endpoint string `json:"endpoint"`
	Region   string `json:"region"`
}

// newTestProxy spins up a fake signing proxy that validates the HMAC headers
// and dispatches on the requested endpoint.
func newTestProxy(t *testing.T, secret string, respond func(req proxyRequest) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req proxyRequest
		require.NoError(t, json.Unmarshal(body, &req))

		// The signature covers method, endpoint, timestamp and body.
		ts := r.Header.Get("x-timestamp")
		require.NotEmpty(t, ts)
		canonical := fmt.Sprintf("POST|%s|%s|%s", req.Endpoint, ts, string(body))
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(canonical))
		expected := hex.EncodeToString(mac.Sum(nil))
		require.Equal(t, expected, r.Header.Get("x-signature"))
		require.Equal(t, "test-client", r.Header.Get("x-client-id"))

		status, resp := respond(req)
		w.WriteHeader(status)
		fmt.Fprint(w, resp)
	}))
}

func newTestClient(proxyURL string) riot.Client {
	return riot.NewClient(config.RiotConfig{
		ProxyURL:       proxyURL,
		ClientID:       "test-client",
		ClientSecret:   "test-secret",
		PlatformRegion: "euw1",
		MatchRegion:    "europe",
	})
}

func TestGetAccountByRiotID(t *testing.T) {
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		assert.Equal(t, "/riot/account/v1/accounts/by-riot-id/Faker/KR1", req.Endpoint)
		assert.Equal(t, "europe", req.Region)
		return http.StatusOK, `{"puuid":"abc","gameName":"Faker","tagLine":"KR1"}`
	})
	defer srv.Close()

	account, err := newTestClient(srv.URL).GetAccountByRiotID(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	assert.Equal(t, "abc", account.Puuid)
	assert.Equal(t, "Faker", account.GameName)
}

func TestGetRankedMatchIDs(t *testing.T) {
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		assert.Equal(t, "/lol/match/v5/matches/by-puuid/abc/ids?type=ranked&start=0&count=20", req.Endpoint)
		assert.Equal(t, "europe", req.Region)
		return http.StatusOK, `["EUW1_1","EUW1_2"]`
	})
	defer srv.Close()

	ids, err := newTestClient(srv.URL).GetRankedMatchIDs(context.Background(), "abc", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUW1_1", "EUW1_2"}, ids)
}

func TestGetMatchReturnsRawBody(t *testing.T) {
	payload := `{"metadata":{"matchId":"EUW1_1"},"info":{"gameMode":"CLASSIC","unknownField":42}}`
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		return http.StatusOK, payload
	})
	defer srv.Close()

	match, raw, err := newTestClient(srv.URL).GetMatch(context.Background(), "EUW1_1")
	require.NoError(t, err)
	assert.Equal(t, "EUW1_1", match.Metadata.MatchID)
	assert.Equal(t, "CLASSIC", match.Info.GameMode)
	// Fields the typed struct does not know survive in the raw body.
	assert.Equal(t, payload, string(raw))
}

func TestGetActiveGameNotFoundIsAbsence(t *testing.T) {
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		return http.StatusNotFound, `{"status":{"message":"spectator game not found"}}`
	})
	defer srv.Close()

	game, err := newTestClient(srv.URL).GetActiveGame(context.Background(), "abc")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestGetActiveGameSpectatorBodyIsAbsence(t *testing.T) {
	// Some proxies flatten the upstream 404 into a 400 with the spectator
	// message in the body.
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		return http.StatusBadRequest, `{"error":"Spectator game not found for this summoner"}`
	})
	defer srv.Close()

	game, err := newTestClient(srv.URL).GetActiveGame(context.Background(), "abc")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestServerErrorSurfacesAsAPIError(t *testing.T) {
	srv := newTestProxy(t, "test-secret", func(req proxyRequest) (int, string) {
		return http.StatusInternalServerError, `upstream exploded`
	})
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetSummonerByPUUID(context.Background(), "abc")
	require.Error(t, err)
	apiErr, ok := err.(*riot.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Body, "upstream exploded")
	assert.False(t, riot.IsNotFound(err))
}

package riot

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetAccountByRiotIDFunc func(gameName, tagLine string) (*Account, error)
	GetSummonerByPUUIDFunc func(puuid string) (*Summoner, error)
	GetLeagueEntriesFunc   func(puuid string) ([]LeagueEntry, error)
	GetRankedMatchIDsFunc  func(puuid string, count int) ([]string, error)
	GetMatchFunc           func(matchID string) (*Match, []byte, error)
	GetTopMasteriesFunc    func(puuid string, count int) ([]ChampionMastery, error)
	GetActiveGameFunc      func(puuid string) (*CurrentGameInfo, error)

	// Call records
	GetAccountByRiotIDCalls int
	GetSummonerByPUUIDCalls int
	GetLeagueEntriesCalls   int
	GetRankedMatchIDsCalls  int
	GetMatchCalls           []string
	GetTopMasteriesCalls    int
	GetActiveGameCalls      int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) GetAccountByRiotID(_ context.Context, gameName, tagLine string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAccountByRiotIDCalls++
	if m.GetAccountByRiotIDFunc != nil {
		return m.GetAccountByRiotIDFunc(gameName, tagLine)
	}
	return &Account{Puuid: "mock-puuid", GameName: gameName, TagLine: tagLine}, nil
}

func (m *MockClient) GetSummonerByPUUID(_ context.Context, puuid string) (*Summoner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetSummonerByPUUIDCalls++
	if m.GetSummonerByPUUIDFunc != nil {
		return m.GetSummonerByPUUIDFunc(puuid)
	}
	return &Summoner{Puuid: puuid}, nil
}

func (m *MockClient) GetLeagueEntries(_ context.Context, puuid string) ([]LeagueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLeagueEntriesCalls++
	if m.GetLeagueEntriesFunc != nil {
		return m.GetLeagueEntriesFunc(puuid)
	}
	return []LeagueEntry{}, nil
}

func (m *MockClient) GetRankedMatchIDs(_ context.Context, puuid string, count int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetRankedMatchIDsCalls++
	if m.GetRankedMatchIDsFunc != nil {
		return m.GetRankedMatchIDsFunc(puuid, count)
	}
	return []string{}, nil
}

func (m *MockClient) GetMatch(_ context.Context, matchID string) (*Match, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchCalls = append(m.GetMatchCalls, matchID)
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return &Match{Metadata: MatchMetadata{MatchID: matchID}}, []byte("{}"), nil
}

func (m *MockClient) GetTopMasteries(_ context.Context, puuid string, count int) ([]ChampionMastery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTopMasteriesCalls++
	if m.GetTopMasteriesFunc != nil {
		return m.GetTopMasteriesFunc(puuid, count)
	}
	return []ChampionMastery{}, nil
}

func (m *MockClient) GetActiveGame(_ context.Context, puuid string) (*CurrentGameInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetActiveGameCalls++
	if m.GetActiveGameFunc != nil {
		return m.GetActiveGameFunc(puuid)
	}
	return nil, nil
}

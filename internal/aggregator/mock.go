package aggregator

import (
	"context"
	"sync"

	"github.com/larsmk/riftline/internal/dashboard"
)

// MockService is a mock implementation of the Service interface for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	GetDashboardFunc  func(name string, forceRefresh bool) (*dashboard.Data, bool, error)
	GetLiveGameFunc   func(name string) (*dashboard.LiveGame, bool, error)
	GetMatchViewsFunc func(name string) ([]dashboard.MatchView, error)

	// Call records
	GetDashboardCalls  []string
	GetLiveGameCalls   []string
	GetMatchViewsCalls []string
}

// NewMockService creates a new mock instance.
func NewMockService() *MockService {
	return &MockService{}
}

var _ Service = (*MockService)(nil)

func (m *MockService) GetDashboard(_ context.Context, name string, forceRefresh bool) (*dashboard.Data, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetDashboardCalls = append(m.GetDashboardCalls, name)
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(name, forceRefresh)
	}
	return &dashboard.Data{}, true, nil
}

func (m *MockService) GetLiveGame(_ context.Context, name string) (*dashboard.LiveGame, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLiveGameCalls = append(m.GetLiveGameCalls, name)
	if m.GetLiveGameFunc != nil {
		return m.GetLiveGameFunc(name)
	}
	return nil, false, nil
}

func (m *MockService) GetMatchViews(_ context.Context, name string) ([]dashboard.MatchView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchViewsCalls = append(m.GetMatchViewsCalls, name)
	if m.GetMatchViewsFunc != nil {
		return m.GetMatchViewsFunc(name)
	}
	return nil, nil
}

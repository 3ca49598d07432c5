package lcu

import "context"

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	GetActiveAccountFunc  func() (*ActiveAccount, error)
	GetActiveAccountCalls int
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) GetActiveAccount(_ context.Context) (*ActiveAccount, error) {
	m.GetActiveAccountCalls++
	if m.GetActiveAccountFunc != nil {
		return m.GetActiveAccountFunc()
	}
	return &ActiveAccount{GameName: "MockPlayer", TagLine: "EUW"}, nil
}

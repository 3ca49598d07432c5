package lcu

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Client reports the account currently signed in to the local League client.
type Client interface {
	GetActiveAccount(ctx context.Context) (*ActiveAccount, error)
}

// ActiveAccount is the locally signed-in player's riot id.
type ActiveAccount struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// APIClient talks to the League client's local HTTPS API using the
// credentials from its lockfile. The client uses a self-signed certificate,
// so verification is disabled for this loopback connection only.
type APIClient struct {
	httpClient *http.Client
	locate     func() (*Lockfile, error)
}

// NewClient creates a client that discovers the local League client on demand.
func NewClient() Client {
	return &APIClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		locate: LocateLockfile,
	}
}

var _ Client = (*APIClient)(nil)

func (c *APIClient) GetActiveAccount(ctx context.Context) (*ActiveAccount, error) {
	lockfile, err := c.locate()
	if err != nil {
		return nil, fmt.Errorf("failed to locate league client: %w", err)
	}

	url := fmt.Sprintf("https://127.0.0.1:%d/lol-summoner/v1/current-summoner", lockfile.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("riot", lockfile.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach league client: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("League client returned non-OK status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("league client returned status %d", resp.StatusCode)
	}

	var account ActiveAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode current summoner: %w", err)
	}
	if account.GameName == "" {
		return nil, fmt.Errorf("league client returned an empty account name")
	}
	return &account, nil
}

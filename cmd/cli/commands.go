package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	summoner     string
	forceRefresh bool
)

func init() {
	dashboardCmd.Flags().StringVar(&summoner, "summoner", "", "Riot id (Name#Tag); defaults to the active player")
	dashboardCmd.Flags().BoolVar(&forceRefresh, "refresh", false, "Bypass the cache and refresh from the remote API")
	matchesCmd.Flags().StringVar(&summoner, "summoner", "", "Riot id (Name#Tag); defaults to the active player")
	liveCmd.Flags().StringVar(&summoner, "summoner", "", "Riot id (Name#Tag); defaults to the active player")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(countersCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch the composed dashboard for a summoner",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/dashboard?" + summonerQuery()
		if forceRefresh {
			endpoint += "&refresh=true"
		}
		return performGetRequest(endpoint)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the stored match history for a summoner",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches?" + summonerQuery())
	},
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Show the stored live-game snapshot for a summoner",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/live?" + summonerQuery())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Get the durable operational counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/counters")
	},
}

func summonerQuery() string {
	return url.Values{"summoner": {summoner}}.Encode()
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName  string
	Port    string
	DataDir string
	Riot    RiotConfig
	Turso   TursoConfig
}

// RiotConfig describes how to reach the signed Riot proxy.
type RiotConfig struct {
	ProxyURL     string
	ClientID     string
	ClientSecret string
	// PlatformRegion routes summoner/league/spectator endpoints (e.g. "euw1").
	PlatformRegion string
	// MatchRegion routes match-v5 endpoints (e.g. "europe").
	MatchRegion string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

const (
	// DashboardTTL is how long a cached dashboard row is served without a refresh.
	DashboardTTL = 600 * time.Second

	// SummonerFieldsTTL covers only the basic level/icon fields, which move
	// slower than the rest of the dashboard.
	SummonerFieldsTTL = 900 * time.Second

	// RecentMatchCount is how many ranked matches a refresh pulls.
	RecentMatchCount = 20
)

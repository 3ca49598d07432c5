package lcu

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Lockfile holds the connection details the League client writes next to its
// executable while it is running. Format: name:pid:port:password:protocol.
type Lockfile struct {
	Name     string
	PID      int
	Port     int
	Password string
	Protocol string
}

func defaultLockfilePaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Riot Games\League of Legends\lockfile`, `C:\Program Files\Riot Games\League of Legends\lockfile`}
	case "darwin":
		return []string{"/Applications/League of Legends.app/Contents/LoL/lockfile"}
	default:
		home, _ := os.UserHomeDir()
		return []string{filepath.Join(home, ".local/share/leagueoflegends/lockfile")}
	}
}

// LocateLockfile reads the lockfile from the usual install locations.
func LocateLockfile() (*Lockfile, error) {
	var lastErr error
	for _, path := range defaultLockfilePaths() {
		contents, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		return ParseLockfile(string(contents))
	}
	return nil, fmt.Errorf("no running League client found: %w", lastErr)
}

// ParseLockfile parses the raw lockfile contents.
func ParseLockfile(contents string) (*Lockfile, error) {
	parts := strings.Split(strings.TrimSpace(contents), ":")
	if len(parts) != 5 {
		return nil, fmt.Errorf("unexpected lockfile format: expected 5 parts, got %d", len(parts))
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse lockfile pid: %w", err)
	}
	port, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("failed to parse lockfile port: %w", err)
	}
	return &Lockfile{
		Name:     parts[0],
		PID:      pid,
		Port:     port,
		Password: parts[3],
		Protocol: parts[4],
	}, nil
}

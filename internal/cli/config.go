package cli

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	PlayerID     string
	PlayerName   string
	PlayerIDFile string
	Output       string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("ARENA_SERVER", "http://localhost:8080"),
		PlayerID:     os.Getenv("ARENA_PLAYER_ID"),
		PlayerName:   getEnvOrDefault("ARENA_PLAYER_NAME", "anonymous"),
		PlayerIDFile: getEnvOrDefault("ARENA_PLAYER_ID_FILE", defaultPlayerIDFile()),
		Output:       "text",
	}
}

// LoadPlayerID loads the locally persisted player ID, generating and
// saving a fresh one on first use. The server treats the ID as opaque.
func (c *Config) LoadPlayerID() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerIDFile)
	if err == nil && len(data) > 0 {
		c.PlayerID = string(data)
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	c.PlayerID = uuid.NewString()

	dir := filepath.Dir(c.PlayerIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.PlayerIDFile, []byte(c.PlayerID), 0600)
}

func defaultPlayerIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arena_player_id"
	}
	return filepath.Join(home, ".arena", "player_id")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

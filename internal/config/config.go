package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DefaultBaseURL matches the assistant backend's default port
	DefaultBaseURL = "http://localhost:5001"

	// EnvBaseURL is the environment variable holding the backend base URL
	EnvBaseURL = "ASSISTANT_API_URL"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds application configuration
type Config struct {
	BaseURL string
	Theme   string
	DataDir string
	Debug   bool
	Plain   bool
}

// BaseURLFromEnv resolves the backend base URL from the environment,
// falling back to the default.
func BaseURLFromEnv() string {
	if url := os.Getenv(EnvBaseURL); url != "" {
		return url
	}
	return DefaultBaseURL
}

// Prefs holds user preferences persisted between runs
type Prefs struct {
	Theme string `json:"theme"`
}

func prefsFile(dataDir string) string {
	return filepath.Join(dataDir, "preferences.json")
}

// LoadPrefs reads persisted preferences; a missing file yields defaults
func LoadPrefs(dataDir string) (Prefs, error) {
	data, err := os.ReadFile(prefsFile(dataDir))
	if os.IsNotExist(err) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, err
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// SavePrefs writes preferences to disk
func SavePrefs(dataDir string, p Prefs) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(prefsFile(dataDir), data, 0644)
}

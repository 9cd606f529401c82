package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv(EnvBaseURL, "http://assistant.internal:8080")
	assert.Equal(t, "http://assistant.internal:8080", BaseURLFromEnv())
}

func TestPrefsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadPrefs(dir)
	require.NoError(t, err)
	assert.Empty(t, p.Theme)

	require.NoError(t, SavePrefs(dir, Prefs{Theme: ThemeDark}))

	p, err = LoadPrefs(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, p.Theme)
}

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TeleChat/internal/config"
)

func TestThemeByName(t *testing.T) {
	assert.True(t, ThemeByName(config.ThemeDark).IsDark)
	assert.False(t, ThemeByName(config.ThemeLight).IsDark)
}

func TestThemeByNameFallsBackToDetection(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, ThemeByName("").IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, ThemeByName("nonsense").IsDark)
}

func TestNewStylesCarriesTheme(t *testing.T) {
	s := NewStyles(DarkTheme())
	assert.True(t, s.Theme.IsDark)
}

func TestRenderDividerSpansWidth(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.NotEmpty(t, s.RenderDivider(10))
	assert.NotEmpty(t, s.RenderDivider(0))
}

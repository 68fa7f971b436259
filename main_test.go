package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/page-indicator/internal/config"
)

func TestLoadConfigAppliesFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGE_INDICATOR_CONFIG", "")
	t.Setenv("PAGE_INDICATOR_INDICATOR_CIRCLES", "3")

	require.NoError(t, windowCmd.ParseFlags([]string{"--circles", "5", "--color", "#00ff00", "--sound"}))

	cfg, err := loadConfig(windowCmd)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Indicator.Circles, "flags win over env")
	assert.Equal(t, "#00ff00", cfg.Indicator.Color)
	assert.True(t, cfg.Sound.Enabled)
	assert.Equal(t, config.DefaultStroke, cfg.Indicator.Stroke)
}

func TestTerminalStroke(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGE_INDICATOR_CONFIG", "")
	t.Setenv("PAGE_INDICATOR_INDICATOR_STROKE", "20")
	t.Setenv("PAGE_INDICATOR_TUI_STROKE", "2.5")

	cfg, err := loadConfig(tuiCmd)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Indicator.Stroke)
	assert.Equal(t, 2.5, terminalStroke(tuiCmd, cfg), "window stroke does not leak into the terminal")

	require.NoError(t, tuiCmd.ParseFlags([]string{"--stroke", "3"}))
	cfg, err = loadConfig(tuiCmd)
	require.NoError(t, err)
	assert.Equal(t, 3.0, terminalStroke(tuiCmd, cfg), "flag wins")
}

func TestLoadConfigRejectsBadColorFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGE_INDICATOR_CONFIG", "")

	require.NoError(t, tuiCmd.ParseFlags([]string{"--color", "nope"}))

	_, err := loadConfig(tuiCmd)
	assert.ErrorIs(t, err, config.ErrInvalidColor)
}

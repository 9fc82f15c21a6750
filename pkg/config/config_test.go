package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "george", cfg.Input.Source)
	assert.Equal(t, "utf-16", cfg.Input.Encoding)
	assert.Equal(t, 20, cfg.Engine.RefundWindowDays)
	assert.True(t, cfg.Engine.Since.IsZero())
	assert.Equal(t, "chart.html", cfg.Output.ChartPath)
	assert.Equal(t, "default", cfg.Output.Palette)
	assert.InDelta(t, 0.90, cfg.Output.Opacity, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEDGERCHART_SOURCE", "patron")
	t.Setenv("LEDGERCHART_REFUND_WINDOW_DAYS", "5")
	t.Setenv("LEDGERCHART_SINCE", "2024-01-01")
	t.Setenv("LEDGERCHART_PALETTE", "forest")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "patron", cfg.Input.Source)
	assert.Equal(t, 5, cfg.Engine.RefundWindowDays)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Engine.Since)
	assert.Equal(t, "forest", cfg.Output.Palette)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("invalid since date", func(t *testing.T) {
		t.Setenv("LEDGERCHART_SINCE", "01.01.2024")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative window", func(t *testing.T) {
		t.Setenv("LEDGERCHART_REFUND_WINDOW_DAYS", "-3")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("opacity out of range", func(t *testing.T) {
		t.Setenv("LEDGERCHART_OPACITY", "1.5")
		_, err := Load()
		assert.Error(t, err)
	})
}

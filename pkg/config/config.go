package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Input  InputConfig
	Engine EngineConfig
	Output OutputConfig
}

type InputConfig struct {
	Source   string
	Encoding string
}

type EngineConfig struct {
	RefundWindowDays int
	Since            time.Time
}

type OutputConfig struct {
	ChartPath  string
	ExcelPath  string
	Opacity    float64
	Palette    string
	ChartTitle string
}

// Load reads configuration from environment variables. A .env file in
// the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Input: InputConfig{
			Source:   getEnv("LEDGERCHART_SOURCE", "george"),
			Encoding: getEnv("LEDGERCHART_ENCODING", "utf-16"),
		},
		Engine: EngineConfig{
			RefundWindowDays: getEnvAsInt("LEDGERCHART_REFUND_WINDOW_DAYS", 20),
		},
		Output: OutputConfig{
			ChartPath:  getEnv("LEDGERCHART_CHART_PATH", "chart.html"),
			ExcelPath:  getEnv("LEDGERCHART_EXCEL_PATH", ""),
			Opacity:    getEnvAsFloat("LEDGERCHART_OPACITY", 0.90),
			Palette:    getEnv("LEDGERCHART_PALETTE", "default"),
			ChartTitle: getEnv("LEDGERCHART_CHART_TITLE", "Monthly spending"),
		},
	}

	if since := os.Getenv("LEDGERCHART_SINCE"); since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return nil, fmt.Errorf("LEDGERCHART_SINCE: %w", err)
		}
		cfg.Engine.Since = t
	}

	if cfg.Engine.RefundWindowDays < 0 {
		return nil, fmt.Errorf("LEDGERCHART_REFUND_WINDOW_DAYS must not be negative")
	}
	if cfg.Output.Opacity <= 0 || cfg.Output.Opacity > 1 {
		return nil, fmt.Errorf("LEDGERCHART_OPACITY must be in (0, 1]")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

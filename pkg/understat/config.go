package understat

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UnderstatConfig centralizes every tunable parameter of the stats layer so
// nothing is buried as a magic number in the fetch or aggregation code.
type UnderstatConfig struct {
	// Storage
	AssetsPath string // base directory for goalgorithm assets
	DbPath     string // location of the sqlite stats cache

	// Fetching
	BaseURL  string        // understat league-data endpoint
	PageURL  string        // understat league page (HTML fallback)
	CacheTTL time.Duration // how long cached team stats stay fresh

	// Aggregation
	Per90Precision   int     // decimal places for per-90 rates
	AveragePrecision int     // decimal places for league averages
	FallbackAverage  float64 // league average when no team data exists
}

// DefaultUnderstatConfig returns the standard configuration.
func DefaultUnderstatConfig() *UnderstatConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	assetsPath := filepath.Join(home, ".goalgorithm")

	return &UnderstatConfig{
		AssetsPath: assetsPath,
		DbPath:     filepath.Join(assetsPath, "goalgorithm.db"),

		BaseURL:  "https://understat.com/getLeagueData/",
		PageURL:  "https://understat.com/league/",
		CacheTTL: 12 * time.Hour,

		Per90Precision:   3,
		AveragePrecision: 4,
		FallbackAverage:  1.3,
	}
}

// Config is the active configuration instance.
var Config *UnderstatConfig

func init() {
	Config = DefaultUnderstatConfig()
}

// ValidateConfig ensures configuration values are usable.
func ValidateConfig(config *UnderstatConfig) error {
	if config.CacheTTL <= 0 {
		return fmt.Errorf("CacheTTL must be positive, got: %v", config.CacheTTL)
	}
	if config.FallbackAverage <= 0 {
		return fmt.Errorf("FallbackAverage must be positive, got: %f", config.FallbackAverage)
	}
	if config.Per90Precision < 0 || config.AveragePrecision < 0 {
		return fmt.Errorf("precision values must be non-negative")
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/stockscore/backend/internal/catalog"
	"github.com/wonny/stockscore/backend/pkg/config"
)

var (
	// Global flags
	catalogPath string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockscore",
	Short: "Stock Score - AI 기반 주식 분석 서비스 백엔드",
	Long: `Stock Score Backend CLI

종목 스코어 랭킹과 30일 히스토리 합성을 제공하는 백엔드.

Usage:
  go run ./cmd/stockscore [command]

Examples:
  go run ./cmd/stockscore api
  go run ./cmd/stockscore rank
  go run ./cmd/stockscore history NVDA --seed 42`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog seed file (default is built-in universe)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// buildCatalog resolves the instrument catalog for a command run.
// Flag > env config > built-in seed.
func buildCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path := catalogPath
	if path == "" && cfg != nil {
		path = cfg.Catalog.Path
	}
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

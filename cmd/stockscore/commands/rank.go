package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/stockscore/backend/internal/catalog"
	"github.com/wonny/stockscore/backend/pkg/config"
)

// rankCmd prints the catalog rankings to stdout
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "스코어 랭킹 출력",
	Long: `카탈로그 랭킹을 출력합니다.

- 스코어 상위 N개
- 대체 모델 스코어 상위 N개
- 매수 신호 종목

Example:
  go run ./cmd/stockscore rank
  go run ./cmd/stockscore rank --count 5`,
	RunE: runRank,
}

var rankCount int

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVar(&rankCount, "count", 10, "랭킹 개수")
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("=== Top %d by score ===\n", rankCount)
	printRanking(cat.TopByScore(rankCount), func(inst catalog.Instrument) int {
		return inst.Score
	})

	fmt.Printf("\n=== Top %d by alternate score ===\n", rankCount)
	printRanking(cat.TopByAlternateScore(rankCount), func(inst catalog.Instrument) int {
		if inst.AlternateScore == nil {
			return 0
		}
		return *inst.AlternateScore
	})

	buyable := cat.Buyable()
	fmt.Printf("\n=== Buy signals (%d) ===\n", len(buyable))
	for _, inst := range buyable {
		fmt.Printf("  %-6s %-28s %8.2f (%+.1f%%)\n", inst.Ticker, inst.Name, inst.Price, inst.Change)
	}

	return nil
}

func printRanking(ranked []catalog.Instrument, score func(catalog.Instrument) int) {
	for i, inst := range ranked {
		fmt.Printf("  %2d. %-6s %-28s score=%3d price=%8.2f\n",
			i+1, inst.Ticker, inst.Name, score(inst), inst.Price)
	}
}

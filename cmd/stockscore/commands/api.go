package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/stockscore/backend/internal/api"
	"github.com/wonny/stockscore/backend/internal/api/handlers"
	"github.com/wonny/stockscore/backend/internal/history"
	"github.com/wonny/stockscore/backend/pkg/config"
	"github.com/wonny/stockscore/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 종목 목록/랭킹 조회 엔드포인트 제공
- 상세 화면용 WebSocket 선택 세션 제공

Endpoints:
  GET /health                             - Health check
  GET /api/v1/stocks                      - 전체 종목
  GET /api/v1/stocks/buyable              - 매수 신호 종목
  GET /api/v1/stocks/top                  - 스코어 랭킹
  GET /api/v1/stocks/top/alternate        - 대체 모델 랭킹
  GET /api/v1/stocks/{ticker}             - 종목 상세
  GET /api/v1/stocks/{ticker}/history     - 30일 히스토리
  GET /ws/stocks/{ticker}                 - 선택 세션 (WebSocket)

Example:
  go run ./cmd/stockscore api
  go run ./cmd/stockscore api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Stock Score API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Build catalog
	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}
	log.WithField("instruments", cat.Len()).Info("Catalog loaded")

	// 4. Create synthesizer (unseeded noise source in production)
	synth := history.NewSynthesizer(nil, nil)

	// 5. Create handlers
	stockHandler := handlers.NewStockHandler(cat, synth, cfg.History.Days, log)
	sessionHandler := handlers.NewSessionHandler(cat, synth, cfg.History.Days, log)

	// 6. Create router
	router := api.NewRouter(cfg, stockHandler, sessionHandler, log)

	// 7. Create server
	server := api.New(cfg, log, router)

	// 8. Run until interrupted; Run handles the graceful drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/v1/stocks")
	fmt.Println("  GET /api/v1/stocks/buyable")
	fmt.Println("  GET /api/v1/stocks/top")
	fmt.Println("  GET /api/v1/stocks/top/alternate")
	fmt.Println("  GET /api/v1/stocks/{ticker}")
	fmt.Println("  GET /api/v1/stocks/{ticker}/history")
	fmt.Println("  GET /ws/stocks/{ticker}")
	fmt.Println("\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

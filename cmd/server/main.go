package main

import (
	"log"
	"os"
	"strings"
	"time"

	httpadapter "tavola/internal/adapter/http"
	"tavola/internal/adapter/ladderconfig"
	metricsinmem "tavola/internal/adapter/metrics/inmemory"
	gormrepo "tavola/internal/adapter/repo/gorm"
	"tavola/internal/adapter/repo/memory"
	"tavola/internal/app/award"
	"tavola/internal/app/history"
	"tavola/internal/app/leaderboard"
	"tavola/internal/app/overview"
	"tavola/internal/app/ports"
	"tavola/internal/app/progress"
	"tavola/internal/domain/progression"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	ladder, err := buildLadder(strings.TrimSpace(os.Getenv("TAVOLA_LADDER_PATH")))
	if err != nil {
		log.Fatalf("load ladder: %v", err)
	}
	accounts, ledger, board, txManager := mustBuildRepos()
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		ProgressUC: progress.UseCase{Accounts: accounts, Ladder: ladder, Now: time.Now},
		OverviewUC: overview.UseCase{Accounts: accounts, Ladder: ladder},
		HistoryUC:  history.UseCase{Ledger: ledger},
		OrderUC: award.OrderUseCase{
			TxManager: txManager,
			Accounts:  accounts,
			Ledger:    ledger,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		QuestUC: award.QuestUseCase{
			TxManager: txManager,
			Accounts:  accounts,
			Ledger:    ledger,
			Ladder:    ladder,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		LeaderboardUC: leaderboard.UseCase{Board: board, Ladder: ladder},
		KPI:           kpiRecorder,
	}

	addr := resolveAddr()
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("tavola server listening on %s", addr)
	s.Spin()
}

// buildLadder loads the tier/act configuration. An empty path selects the
// built-in ladder.
func buildLadder(path string) (progression.Ladder, error) {
	if path == "" {
		return ladderconfig.Default()
	}
	return ladderconfig.Load(path)
}

func mustBuildRepos() (ports.AccountRepository, ports.LedgerRepository, ports.LeaderboardRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("TAVOLA_DB_DSN"))
	if dsn == "" {
		log.Println("TAVOLA_DB_DSN is empty, using in-memory repositories")
		store := memory.NewStore()
		store.SeedAccount(demoAccount())
		return memory.NewAccountRepo(store), memory.NewLedgerRepo(store), memory.NewLeaderboardRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewAccountRepo(db), gormrepo.NewLedgerRepo(db), gormrepo.NewLeaderboardRepo(db), gormrepo.NewTxManager(db)
}

// demoAccount seeds the in-memory store so the API is explorable without a
// database.
func demoAccount() progression.AccountSnapshot {
	now := time.Now().UTC()
	return progression.AccountSnapshot{
		MemberID:    "demo-member",
		DisplayName: "Vinnie the Regular",
		Points:      1750,
		Tokens:      42,
		CreatedAt:   now.Add(-30 * 24 * time.Hour),
		Inventory: []progression.Booster{
			{ID: "b-1", Name: "Double Points (48h)", Type: progression.DefaultBoosterType, UnlockedAt: now.Add(-2 * time.Hour)},
		},
		Quests: []progression.Quest{
			{ID: "q-weekly", Title: "Order three pastas", RewardType: progression.RewardPoints, RewardAmount: 150, MinAct: 0, Progress: 100},
			{ID: "q-elite", Title: "Host a private dinner", RewardType: progression.RewardTokens, RewardAmount: 75, MinAct: 2, Progress: 0},
		},
		Version: 1,
	}
}

func resolveAddr() string {
	addr := strings.TrimSpace(os.Getenv("TAVOLA_HTTP_ADDR"))
	if addr == "" {
		return ":8080"
	}
	return addr
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skyland/internal/advisor"
	"skyland/internal/catalog"
	"skyland/internal/config"
	"skyland/internal/db"
	"skyland/internal/game"
	"skyland/internal/store"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	svc, closeStores, err := buildService(ctx, cfg, logger)
	if err != nil {
		logger.Error("service init failed", "err", err)
		os.Exit(1)
	}
	defer closeStores()

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("SKYLAND_WORKER_RUN_ONCE")), "true")
	if runOnce {
		settled, err := svc.AutoAdvanceAll(ctx)
		if err != nil {
			logger.Error("auto advance failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed", "settled", settled)
		return
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.AutoAdvanceCron, func() {
		settled, err := svc.AutoAdvanceAll(ctx)
		if err != nil {
			logger.Error("auto advance failed", "err", err)
			return
		}
		logger.Info("auto advance complete", "settled", settled)
	})
	if err != nil {
		logger.Error("bad cron spec", "spec", cfg.AutoAdvanceCron, "err", err)
		os.Exit(1)
	}

	c.Start()
	logger.Info("worker started", "cron", cfg.AutoAdvanceCron, "store", cfg.StoreBackend)
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("worker shutdown")
}

func buildService(ctx context.Context, cfg config.APIConfig, logger *slog.Logger) (*game.Service, func(), error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}

	var (
		sessions game.SessionStore
		badges   game.AchievementStore
		audit    game.SettlementAuditor
		closeFn  = func() {}
	)
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		sessions, badges, audit = pg, pg, pg
		closeFn = pool.Close
	case "memory":
		mem := store.NewMemory()
		sessions, badges, audit = mem, mem, mem
	default:
		fs, err := store.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		sessions, badges, audit = fs, fs, fs
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mode := game.ReturnSimulated
	if cfg.ReturnMode == "random" {
		mode = game.ReturnRandom
	}
	engine := game.NewEngine(cat, game.NewLockedRand(seed), mode)

	var commentary game.Commentary = advisor.NewTemplates()
	if cfg.AdvisorURL != "" {
		commentary = advisor.NewHTTPGenerator(cfg.AdvisorURL, cfg.AdvisorAPIKey)
	}

	svc := game.NewService(engine, sessions, badges, audit, commentary, logger)
	svc.CommentaryBudget = cfg.AdvisorBudget
	return svc, closeFn, nil
}

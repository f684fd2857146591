package main

import (
	"arena-server/internal/engine"
	"arena-server/internal/server"
	"arena-server/internal/version"
	"arena-server/pkg/arena"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed        int64
		seedPhrase  string
		battlePath  string
		replayPath  string
		turnTimeout time.Duration
		replayDir   string
	)
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master seed for crits and cover (0 for random)")
	flag.StringVar(&seedPhrase, "seed-phrase", "", "Derive the master seed from a phrase (overrides -seed)")
	flag.StringVar(&battlePath, "battle", "", "Path to battle YAML (built-in skirmish if empty)")
	flag.StringVar(&replayPath, "replay", "", "Path to .arrp replay file to simulate")
	flag.DurationVar(&turnTimeout, "turn-timeout", 60*time.Second, "Force end of turn after this idle time (0 disables)")
	flag.StringVar(&replayDir, "replays", "replays", "Directory for replays and snapshots (empty disables)")
	flag.Parse()

	logger.Log.Info("Starting Arena...")
	logger.Log.Info(version.String())

	def := arena.Default()
	if battlePath != "" {
		loaded, err := arena.Load(battlePath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load battle")
		}
		def = loaded
	}

	cfg := engine.NewConfig()
	cfg.TurnTimeout = turnTimeout
	cfg.ReplayDir = replayDir

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		cfg.ReplayDir = ""

		gameService := engine.NewService(cfg)
		inst, err := gameService.LoadReplay(replayPath, def)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load replay")
		}

		fields := logrus.Fields{
			"battle_id": inst.ID,
			"turn":      inst.Battle.Turns.TurnNumber(),
			"over":      inst.Battle.IsOver(),
		}
		if winner, ok := inst.Battle.Winner(); ok {
			fields["winner"] = winner.String()
		}
		for _, c := range inst.Battle.Roster.All() {
			logger.Log.WithFields(logrus.Fields{
				"combatant": c.Name,
				"team":      c.Team.String(),
				"health":    c.Health.AsText(),
				"dead":      !c.IsAlive(),
			}).Info("Final state")
		}
		logger.Log.WithFields(fields).Info("Replay finished")
		return
	}

	if seedPhrase != "" {
		seed = utils.StringToSeed(seedPhrase)
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("ARENA_PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)
	if _, err := gameService.StartBattle(ctx, def); err != nil {
		logger.Log.WithError(err).Fatal("Failed to start battle")
	}

	// 3. Запуск сервера
	srv := server.New(gameService, port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server start error")
	}

	logger.Log.WithField("clients", gameService.Hub.SubscriberCount()).Info("Shutting down...")
	gameService.SaveReplays()
	logger.Log.Info("Done.")
}

// Package main contains the entrypoint for the Discord AI bridge.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/edgard/aibridge/internal/bot"
	"github.com/edgard/aibridge/internal/bot/handlers"
	"github.com/edgard/aibridge/internal/bot/tasks"
	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/config"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/discord"
	"github.com/edgard/aibridge/internal/gateway"
	"github.com/edgard/aibridge/internal/logger"
	"github.com/edgard/aibridge/internal/reply"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all components, handles graceful shutdown and
// returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "", "Path to configuration file (default ./config.yaml if present)")
	envPath := flag.String("env", ".env", "Path to an optional .env file")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "path", *envPath, "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			slog.Error(err.Error())
			return 1
		}
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(ctx, log, cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(log, db)
	store := database.NewStore(db, log)

	providers, err := buildProviders(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize AI providers", "error", err)
		return 1
	}
	gw := gateway.New(gateway.Config{
		DefaultModel:         cfg.AI.DefaultModel,
		BreakerMaxFailures:   cfg.AI.Breaker.MaxFailures,
		BreakerResetInterval: cfg.AI.Breaker.ResetInterval,
	}, log, providers...)
	log.Info("AI gateway initialized", "providers", gw.Providers(), "default_model", cfg.AI.DefaultModel)

	adapter, err := discord.New(discord.Config{
		Token:          cfg.Discord.Token,
		TypingInterval: cfg.Discord.TypingInterval,
		PresenceText:   cfg.Discord.PresenceText,
		ShutdownGrace:  cfg.Discord.ShutdownGrace,
	}, log)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return 1
	}

	// Help and usage texts quote the prefixes the router actually matches.
	router := command.NewRouter(cfg.Discord.AIPrefix, cfg.Discord.CommandPrefix)
	formatter := reply.New(reply.Options{
		AIPrefix:      router.AIPrefix(),
		CommandPrefix: router.CommandPrefix(),
		GeneralError:  cfg.Messages.GeneralError,
		ModelError:    cfg.Messages.ModelError,
		EmptyResponse: cfg.Messages.EmptyResponse,
		NoModels:      cfg.Messages.NoModels,
		ModelsError:   cfg.Messages.ModelsError,
	})

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Store:     store,
		Gateway:   gw,
		Platform:  adapter,
		Formatter: formatter,
	}
	dispatcher := handlers.NewDispatcher(hDeps, router, handlers.RegisterAllCommands(hDeps))
	adapter.OnMessage(dispatcher.Handler(logger.Middleware(log)))

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, cfg.Scheduler.Jobs(), tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, adapter, sched)

	log.Info("Starting bridge...")
	runErr := app.Run(ctx)
	log.Info("Bridge run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bridge stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bridge stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}

// buildProviders creates a provider for every backend whose credentials are
// present. Having none is not fatal; chat requests then fail with an error
// reply and the model list is empty.
func buildProviders(ctx context.Context, cfg config.AIConfig, log *slog.Logger) ([]gateway.Provider, error) {
	var providers []gateway.Provider

	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, gateway.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL))
	}
	if cfg.GeminiAPIKey != "" {
		gem, err := gateway.NewGemini(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, err
		}
		providers = append(providers, gem)
	}
	if cfg.OllamaHost != "" {
		providers = append(providers, gateway.NewOllama(cfg.OllamaHost))
	}

	if !cfg.HasProvider() {
		log.Warn("No AI provider configured; set OPENAI_API_KEY, GEMINI_API_KEY or OLLAMA_HOST")
	}
	return providers, nil
}

package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StockSandbox/internal/api"
	"StockSandbox/internal/collector"
	"StockSandbox/internal/model"
	"StockSandbox/internal/notifier"
	"StockSandbox/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

var serveRunNow bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the watchlist scheduler and the optional Telegram bot",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveRunNow, "run-now", false, "run the watchlist task once at startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg
	logger := a.logger

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background goroutines write to the recorder; they must be gone before
	// the deferred a.close runs.
	var bg workers
	defer func() {
		stop()
		bg.Wait()
	}()

	defaultWindow, err := model.ParseWindow(cfg.Generator.DefaultPeriod)
	if err != nil {
		return err
	}
	watchWindow, err := model.ParseWindow(cfg.Watch.Period)
	if err != nil {
		return err
	}

	var sender notifier.Sender = notifier.LogSender{Logger: logger}
	var bot *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		bot, err = notifier.NewTelegramNotifier(notifier.TelegramOptions{
			Token:  cfg.Telegram.BotToken,
			ChatID: cfg.Telegram.ChatID,
			Proxy:  cfg.Proxy,
		}, logger)
		if err != nil {
			return err
		}
		if cfg.Telegram.ChatID != 0 {
			sender = bot
		}
	}

	col := collector.NewCollector(a.source, logger)
	sched := scheduler.NewScheduler(ctx, col, sender, a.recorder, cfg.Watch.Symbols, watchWindow, logger)
	if len(cfg.Watch.Symbols) > 0 {
		if err := sched.Register(cfg.Watch.Cron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		if serveRunNow {
			bg.Go(sched.RunWatchNow)
		}
	}

	if bot != nil {
		bg.Go(func() { bot.StartPolling(ctx, sched.HandleCommand) })
		logger.Info().Msg("telegram polling started")
	}

	server := api.NewServer(api.Options{
		Addr:          cfg.Server.Addr,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		DefaultWindow: defaultWindow,
	}, a.source, a.recorder, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("sandbox stopped")
	return nil
}

package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockSandbox/internal/collector"
	"StockSandbox/internal/model"
	"StockSandbox/internal/notifier"
	"StockSandbox/internal/recorder"
	"StockSandbox/internal/strategy"
)

// Scheduler runs watchlist snapshots on a cron and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Symbols   []string
	Window    model.Window
	Ctx       context.Context
	logger    zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, sender notifier.Sender, rec recorder.Recorder,
	symbols []string, window model.Window, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  sender,
		Recorder:  rec,
		Symbols:   symbols,
		Window:    window,
		Ctx:       ctx,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the watchlist task under the given cron spec (with seconds field).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Int("symbols", len(s.Symbols)).Str("window", s.Window.String()).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// RunWatchNow executes the watchlist task immediately.
func (s *Scheduler) RunWatchNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	s.logger.Info().Msg("running watchlist task")
	for _, symbol := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		report, err := s.Snapshot(s.Ctx, symbol, s.Window, recorder.TriggerWatch)
		if err != nil {
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("watch snapshot")
			continue
		}
		s.trySend(report)
	}
}

// Snapshot collects a series, journals it and returns its summary text.
func (s *Scheduler) Snapshot(ctx context.Context, symbol string, window model.Window, trigger recorder.Trigger) (string, error) {
	res, err := s.Collector.Collect(ctx, model.SeriesRequest{Symbol: symbol, Window: window})
	if err != nil {
		return "", err
	}
	if err := s.Recorder.RecordRun(recorder.NewSeriesRun(trigger, res)); err != nil {
		s.logger.Error().Err(err).Str("symbol", res.Symbol).Msg("record run")
	}
	return notifier.FormatSummary(res, strategy.Classify(res.Stats)), nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Group chats address commands as /quote@botname.
	name := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

	switch name {
	case "/quote":
		if len(fields) < 2 {
			return "Usage: /quote SYMBOL [period]\n\n" + notifier.FormatSymbols()
		}
		window := s.Window
		if len(fields) > 2 {
			w, err := model.ParseWindow(fields[2])
			if err != nil {
				return fmt.Sprintf("Unknown period %q.\n\n%s", fields[2], notifier.FormatHelp())
			}
			window = w
		}
		report, err := s.Snapshot(ctx, fields[1], window, recorder.TriggerChat)
		if err != nil {
			s.logger.Warn().Err(err).Str("command", command).Msg("quote command failed")
			return fmt.Sprintf("Could not load %s: %v", fields[1], err)
		}
		return report
	case "/symbols":
		return notifier.FormatSymbols()
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}

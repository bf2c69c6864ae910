package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/socmirror/socmirror/internal/api"
	"github.com/socmirror/socmirror/internal/config"
	"github.com/socmirror/socmirror/internal/engine"
	"github.com/socmirror/socmirror/internal/types"
	"github.com/socmirror/socmirror/internal/ui"
	"github.com/socmirror/socmirror/internal/version"
)

func main() {
	configPath := flag.String("config", "/config/socmirror.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	startView := flag.String("view", "dashboard", "Initial view (dashboard, alerts, cases, case_detail, other)")
	flag.Parse()

	// Create log buffer for the status API (captures last 1000 log entries)
	logBuffer := ui.NewLogBuffer(1000)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logLevelParsed, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		logLevelParsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevelParsed)

	bootstrap := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		bootstrap.Fatal().
			Err(err).
			Str("config_path", *configPath).
			Msg("Failed to load configuration")
	}

	// Fan out logs to stderr, the status-API ring buffer, and an
	// optional rotating file.
	writers := []io.Writer{os.Stderr, logBuffer}
	if cfg.Logger.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logger.File,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
		})
	}
	logger := zerolog.New(io.MultiWriter(writers...)).With().
		Timestamp().
		Str("version", version.GetVersion()).
		Str("commit", version.GetCommit()).
		Logger()

	logger.Info().
		Str("server", cfg.Server.BaseURL).
		Str("ws", cfg.WSURL()).
		Msg("Starting socmirror")

	// Terminal view layer: renders charts, tables, toasts and the
	// connectivity badge to stdout. The engine only sees interfaces.
	renderer := ui.NewRenderer(os.Stdout)
	alertTable := ui.NewAlertTable(renderer)
	caseTable := ui.NewCaseTable(renderer)
	alertForm := ui.NewFilterForm()
	caseForm := ui.NewFilterForm()

	eng := engine.New(cfg, engine.Views{
		ChartFactory: renderer,
		Tiles:        renderer,
		AlertRows:    alertTable,
		CaseRows:     caseTable,
		Toasts:       renderer,
		Status:       renderer,
		AlertForm:    alertForm.Values,
		CaseForm:     caseForm.Values,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eng.Run(ctx)

	view := types.View(*startView)
	switch view {
	case types.ViewDashboard, types.ViewAlerts, types.ViewCases, types.ViewCaseDetail, types.ViewOther:
	default:
		logger.Warn().Str("view", *startView).Msg("Unknown initial view, falling back to dashboard")
		view = types.ViewDashboard
	}
	eng.SetView(view)

	if cfg.Status.Enabled {
		statusServer := api.NewServer(eng, logger, cfg.Status.Port)
		statusServer.SetLogBuffer(logBuffer)
		statusServer.SetVersion(version.GetVersion(), version.GetCommit(), version.GetBuildDate())
		go func() {
			if err := statusServer.Start(); err != nil {
				logger.Error().
					Err(err).
					Msg("Status server error")
			}
		}()
		logger.Info().Str("port", cfg.Status.Port).Msg("Status endpoint available")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info().Msg("socmirror running, press Ctrl+C to stop")

	<-sigChan
	logger.Info().Msg("Shutting down...")

	eng.Close()
	cancel()
	logger.Info().Msg("socmirror stopped")
}

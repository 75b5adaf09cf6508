package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"github.com/rovshanmuradov/botpanel/internal/config"
	"github.com/rovshanmuradov/botpanel/internal/logger"
	"github.com/rovshanmuradov/botpanel/internal/metrics"
	"github.com/rovshanmuradov/botpanel/internal/poller"
	"github.com/rovshanmuradov/botpanel/internal/status"
	"github.com/rovshanmuradov/botpanel/internal/ui"
	"github.com/rovshanmuradov/botpanel/internal/ui/screen"
	"go.uber.org/zap"
)

// AppModel represents the main TUI application model
type AppModel struct {
	dashboard *screen.Dashboard
	width     int
	height    int
}

// NewAppModel creates a new application model
func NewAppModel(d *screen.Dashboard) *AppModel {
	return &AppModel{dashboard: d}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.dashboard.View()
}

// openLogFile rotates the log by size unless log_max_size_mb is 0.
func openLogFile(cfg *config.Config) (*logger.FileWriter, error) {
	onError := func(err error) {
		log.Printf("log file: %v", err)
	}
	if cfg.LogMaxSizeMB == 0 {
		return logger.OpenFile(cfg.LogFile, time.Second, onError)
	}
	return logger.OpenRotating(cfg.LogFile, logger.Rotation{
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}, time.Second, onError)
}

// newTransport keeps enough idle connections for one full refresh batch
// plus a command.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 8
	return t
}

func main() {
	configPath := flag.String("config", "configs/panel.json", "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the dashboard; logs go to the file and the tail.
	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	tail := logger.NewTail(cfg.LogTail)
	appLogger := logger.New(logger.Options{
		Debug: cfg.DebugLogging,
		File:  logFile,
		Tail:  tail,
	})
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting bot panel",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("poll_interval", cfg.PollInterval()))

	registry := prometheus.NewRegistry()
	panelMetrics := metrics.New(registry)

	statusBox := status.NewBox()
	client := api.NewClient(cfg.BaseURL, statusBox,
		api.WithHTTPClient(&http.Client{Transport: newTransport()}),
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(appLogger),
		api.WithObserver(panelMetrics))

	updates := ui.NewUpdateSender(appLogger)
	panes := screen.NewPanes(statusBox)
	poll := poller.New(client, panes.Views(), appLogger, poller.WithApplyOn(updates.Apply),
		poller.WithObserver(panelMetrics.ObserveRefresh))

	dashboard := screen.NewDashboard(rootCtx, panes, screen.DashboardOptions{
		Endpoint: client.BaseURL(),
		Defaults: command.StartParams{
			Mode:     cfg.DefaultMode,
			Symbol:   cfg.DefaultSymbol,
			Interval: cfg.DefaultInterval,
		},
		Tail:   tail,
		Logger: appLogger,
	})
	dispatcher := command.NewDispatcher(client, poll, cfg.DefaultSymbol, appLogger)
	table := command.NewDefaultTable(dispatcher, dashboard.StartParams)
	table.Observe(panelMetrics.ObserveCommand)
	dashboard.SetRunner(table)

	program := tea.NewProgram(
		ui.NewSafeModel(NewAppModel(dashboard), appLogger),
		tea.WithAltScreen(),
		tea.WithContext(rootCtx),
	)
	updates.Attach(program)

	scheduler := poller.NewScheduler(cfg.PollInterval(), poll.RefreshAll, appLogger)
	if err := scheduler.Start(rootCtx); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(rootCtx, cfg.MetricsAddr, registry, appLogger); err != nil {
				appLogger.Error("Metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	_, runErr := program.Run()

	appLogger.Info("Shutting down bot panel")
	stop()
	scheduler.Stop()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		appLogger.Error("TUI application failed", zap.Error(runErr))
		return runErr
	}
	return nil
}

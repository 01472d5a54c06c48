package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	dayloginadapter "pulsecue/internal/modules/daylog/adapter/in"
	daylogoutadapter "pulsecue/internal/modules/daylog/adapter/out"
	daylogservice "pulsecue/internal/modules/daylog/service"
	daylogusecase "pulsecue/internal/modules/daylog/usecase"
	routineinadapter "pulsecue/internal/modules/routine/adapter/in"
	routineoutadapter "pulsecue/internal/modules/routine/adapter/out"
	routineservice "pulsecue/internal/modules/routine/service"
	routineusecase "pulsecue/internal/modules/routine/usecase"
	runnerinadapter "pulsecue/internal/modules/runner/adapter/in"
	runneroutadapter "pulsecue/internal/modules/runner/adapter/out"
	runnerdomain "pulsecue/internal/modules/runner/domain"
	runnerdto "pulsecue/internal/modules/runner/dto"
	runnerservice "pulsecue/internal/modules/runner/service"
	runnerusecase "pulsecue/internal/modules/runner/usecase"
	settingsinadapter "pulsecue/internal/modules/settings/adapter/in"
	settingsoutadapter "pulsecue/internal/modules/settings/adapter/out"
	settingsservice "pulsecue/internal/modules/settings/service"
	settingsusecase "pulsecue/internal/modules/settings/usecase"
	"pulsecue/internal/platform/clock"
	"pulsecue/internal/platform/config"
	"pulsecue/internal/platform/id"
	"pulsecue/internal/platform/sqlitedb"
	uiapp "pulsecue/internal/ui/app"
)

const alertBuffer = 8

type App struct {
	RoutineCLI  routineinadapter.CLIHandler
	DayLogCLI   dayloginadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	RunnerCLI   runnerinadapter.CLIHandler

	// Timer is the runner's tick source. Its channel feeds both the TUI
	// and the headless run loop.
	Timer *runneroutadapter.ChannelTimer

	cfg    config.Config
	logger zerolog.Logger
	db     *sql.DB
	alerts chan runnerdto.AlertOutput
}

func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	txm := sqlitedb.NewTxManager(db)

	routineStore, err := routineoutadapter.NewSQLiteRoutineStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new routine store: %w", err)
	}
	routineUC := routineusecase.NewInteractor(routineservice.NewRoutineService(
		clk, ids, routineStore, txm, logger.With().Str("module", "routine").Logger(),
	))

	dayLogStore, err := daylogoutadapter.NewSQLiteDayLogStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new day log store: %w", err)
	}
	dayLogUC := daylogusecase.NewInteractor(daylogservice.NewDayLogService(
		clk, ids, dayLogStore, logger.With().Str("module", "daylog").Logger(),
	))

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewFileSettingsStore(cfg.SettingsPath),
		logger.With().Str("module", "settings").Logger(),
	))

	runnerLogger := logger.With().Str("module", "runner").Logger()
	alerts := make(chan runnerdto.AlertOutput, alertBuffer)
	timer := runneroutadapter.NewChannelTimer()
	runnerUC := runnerusecase.NewInteractor(runnerservice.NewRunnerService(
		clk,
		runneroutadapter.NewRoutineFinder(routineUC),
		runneroutadapter.NewFileSnapshotStore(cfg.SnapshotPath, runnerLogger),
		runneroutadapter.NewMultiNotifier(
			runneroutadapter.NewScheduledNotifier(clk, deliverTo(alerts)),
			runneroutadapter.NewLogNotifier(runnerLogger),
		),
		runneroutadapter.NewTerminalFeedback(os.Stderr, settingsUC, runnerLogger),
		timer,
		runnerLogger,
		runnerservice.WithTickInterval(cfg.TickInterval),
		runnerservice.WithOrphanPolicy(runnerservice.OrphanPolicy(cfg.OrphanPolicy)),
	))

	return &App{
		RoutineCLI:  routineinadapter.NewCLIHandler(routineUC),
		DayLogCLI:   dayloginadapter.NewCLIHandler(dayLogUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		RunnerCLI:   runnerinadapter.NewCLIHandler(runnerUC),
		Timer:       timer,
		cfg:         cfg,
		logger:      logger,
		db:          db,
		alerts:      alerts,
	}, nil
}

// Close stops the tick source and releases the database.
func (a *App) Close() error {
	a.Timer.Stop()
	return a.db.Close()
}

// Alerts yields step alerts as they come due.
func (a *App) Alerts() <-chan runnerdto.AlertOutput {
	return a.alerts
}

func (a *App) Config() config.Config {
	return a.cfg
}

func RunTUI(ctx context.Context, app *App) error {
	status, err := app.RunnerCLI.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore run: %w", err)
	}
	model := uiapp.NewModel(
		app.RoutineCLI,
		app.DayLogCLI,
		app.SettingsCLI,
		app.RunnerCLI,
		app.Timer.Ticks(),
		app.Alerts(),
		status,
		app.cfg.AutoAdvance,
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if suspendErr := app.RunnerCLI.Suspend(context.WithoutCancel(ctx)); suspendErr != nil {
		app.logger.Warn().Err(suspendErr).Msg("suspend runner on exit")
	}
	return err
}

// deliverTo forwards due alerts without blocking the notifier's timer
// goroutine. Alerts nobody is reading are dropped.
func deliverTo(alerts chan<- runnerdto.AlertOutput) func(runnerdomain.Alert) {
	return func(alert runnerdomain.Alert) {
		select {
		case alerts <- runnerdto.AlertOutput{Title: alert.Title, Body: alert.Body}:
		default:
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pulsecue/internal/bootstrap"
	runnerdto "pulsecue/internal/modules/runner/dto"
	"pulsecue/internal/platform/config"
	"pulsecue/internal/platform/logging"
	"pulsecue/internal/ui/components"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "pulsecue",
		Short:         "Workout routine timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level override: trace|debug|info|warn|error")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newRoutineCmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(flags.logLevel) != "" {
		cfg.LogLevel = flags.logLevel
	}
	logger, logFile, err := logging.NewFile(logging.FileConfig{
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, err
	}
	closer := func() {
		if err := app.Close(); err != nil {
			logger.Warn().Err(err).Msg("close app")
		}
		_ = logFile.Close()
	}
	return app, closer, nil
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	app, closeApp, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer closeApp()
	return bootstrap.RunTUI(ctx, app)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the PulseCue terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
}

func newRoutineCmd(flags *rootFlags) *cobra.Command {
	routine := &cobra.Command{Use: "routine", Short: "Manage workout routines"}

	routine.AddCommand(&cobra.Command{
		Use:   "list [query]",
		Short: "List routines, pinned first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			routines, err := app.RoutineCLI.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(routines) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no routines")
				return nil
			}
			for _, r := range routines {
				pin := " "
				if r.IsPinned {
					pin = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %-24s steps=%d total=%s\n", pin, r.ID, r.Name, len(r.Steps), components.Clock(r.TotalSeconds()))
			}
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "show <routine-id>",
		Short: "Show a routine and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			r, err := app.RoutineCLI.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) total=%s\n", r.Name, r.ID, components.Clock(r.TotalSeconds()))
			for _, step := range r.Steps {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d. %-24s %s  %s\n", step.Order+1, step.Name, components.Clock(step.DurationSeconds), step.ID)
			}
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.RoutineCLI.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Name, out.ID)
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "add-step <routine-id> <name> <seconds>",
		Short: "Append a step to a routine",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("seconds must be a whole number: %w", err)
			}
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.RoutineCLI.AddStep(cmd.Context(), args[0], args[1], seconds)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) at position %d\n", out.Name, components.Clock(out.DurationSeconds), out.Order+1)
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "duplicate <routine-id>",
		Short: "Copy a routine with all of its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.RoutineCLI.Duplicate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Name, out.ID)
			return nil
		},
	})

	routine.AddCommand(&cobra.Command{
		Use:   "delete <routine-id>",
		Short: "Delete a routine and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			if err := app.RoutineCLI.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	})

	return routine
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var auto, resume bool
	run := &cobra.Command{
		Use:   "run [routine-id]",
		Short: "Run a routine in the terminal without the UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !resume {
				return fmt.Errorf("routine id is required unless --resume is set")
			}
			ctx := cmd.Context()
			app, closeApp, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer closeApp()

			var status runnerdto.StatusOutput
			if resume {
				status, err = app.RunnerCLI.Restore(ctx)
			} else {
				status, err = app.RunnerCLI.Start(ctx, args[0], auto || app.Config().AutoAdvance)
			}
			if err != nil {
				return err
			}
			if status.Idle() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to run")
				return nil
			}
			out := cmd.OutOrStdout()
			printStatus(out, status)
			return app.RunnerCLI.Run(ctx, app.Timer.Ticks(), func(s runnerdto.StatusOutput) {
				printStatus(out, s)
			})
		},
	}
	run.Flags().BoolVar(&auto, "auto", false, "start each step as soon as the previous one finishes")
	run.Flags().BoolVar(&resume, "resume", false, "continue the run saved in the snapshot")
	return run
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved run snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			snap, err := app.RunnerCLI.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if !snap.Present {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no run in progress")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "routine=%s step=%d running=%t auto=%t elapsed=%ds\n",
				snap.RoutineID, snap.CurrentStepIndex+1, snap.IsRunning, snap.AutoAdvance, snap.ElapsedSeconds)
			if !snap.Deadline.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deadline=%s\n", snap.Deadline.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}
}

func newLogCmd(flags *rootFlags) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Daily health log"}

	logCmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "Show today's log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, ok, err := app.DayLogCLI.Today(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing logged today")
				return nil
			}
			printDayLog(cmd.OutOrStdout(), out.Day, out.CaloriesIntake, out.CaloriesExercise, out.Balance, out.SleepHours, out.WeightKg)
			return nil
		},
	})

	logCmd.AddCommand(&cobra.Command{
		Use:   "set <intake|exercise|sleep|weight> <value>",
		Short: "Set one metric on today's log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value must be a number: %w", err)
			}
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.DayLogCLI.SetMetric(cmd.Context(), args[0], value)
			if err != nil {
				return err
			}
			printDayLog(cmd.OutOrStdout(), out.Day, out.CaloriesIntake, out.CaloriesExercise, out.Balance, out.SleepHours, out.WeightKg)
			return nil
		},
	})

	var days int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show recent daily logs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			logs, err := app.DayLogCLI.Recent(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no logs")
				return nil
			}
			for _, l := range logs {
				printDayLog(cmd.OutOrStdout(), l.Day, l.CaloriesIntake, l.CaloriesExercise, l.Balance, l.SleepHours, l.WeightKg)
			}
			return nil
		},
	}
	recent.Flags().IntVar(&days, "days", 7, "number of days to include")

	logCmd.AddCommand(recent)
	return logCmd
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "App preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.SettingsCLI.Get(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "beep=%t\n", out.BeepEnabled)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "toggle-beep",
		Short: "Turn the completion beep on or off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.SettingsCLI.ToggleBeep(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "beep=%t\n", out.BeepEnabled)
			return nil
		},
	})

	return settings
}

func printStatus(w io.Writer, s runnerdto.StatusOutput) {
	switch {
	case s.Finished:
		_, _ = fmt.Fprintln(w, "Complete!")
	case s.Idle():
		_, _ = fmt.Fprintln(w, "stopped")
	case s.HasCurrent:
		marker := "ready"
		if s.Resting() {
			marker = "REST"
		}
		_, _ = fmt.Fprintf(w, "[%d/%d] %-24s %s %s\n", s.StepIndex+1, s.StepCount, s.Current.Name, components.Clock(s.RemainingSeconds), marker)
	}
}

func printDayLog(w io.Writer, day string, intake, exercise, balance, sleep float64, weight *float64) {
	weightText := "-"
	if weight != nil {
		weightText = strconv.FormatFloat(*weight, 'f', 1, 64) + "kg"
	}
	_, _ = fmt.Fprintf(w, "%s intake=%.0f exercise=%.0f balance=%.0f sleep=%.1fh weight=%s\n", day, intake, exercise, balance, sleep, weightText)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/internal/config"
	"github.com/central-patrimonium/roster/pkg/api"
	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/core/services"
	"github.com/central-patrimonium/roster/pkg/db"
	"github.com/central-patrimonium/roster/pkg/postgres"
	"github.com/central-patrimonium/roster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	loc      *time.Location
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Central Patrimonium roster - operator shift scheduling and live status",
		Long:  `Backend for the monitoring centre's live panel: shift resolution, weekend previews, manual allocations, and the HTTP API the panel polls.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(weekendCmd())
	rootCmd.AddCommand(addAllocationCmd())
	rootCmd.AddCommand(addAllocationPeriodCmd())
	rootCmd.AddCommand(listOperatorsCmd())
	rootCmd.AddCommand(setRotationCmd())
	rootCmd.AddCommand(setStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, timezone, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.loc, err = app.cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := api.NewHandler(app.database, app.logger, app.loc)
			handler.RegisterRoutes()

			srv := &http.Server{
				Addr:         app.cfg.ListenAddr,
				Handler:      handler.Mux,
				ReadTimeout:  app.cfg.RequestTimeout(),
				WriteTimeout: app.cfg.RequestTimeout(),
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				app.logger.Info("Serving HTTP API", zap.String("addr", app.cfg.ListenAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-quit:
			}

			app.logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(app.ctx, 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}
			app.logger.Info("Server stopped")
			return nil
		},
	}
}

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the resolved on-shift board for right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().In(app.loc)
			view, err := services.GetBoard(app.ctx, app.database, app.logger, now)
			if err != nil {
				return err
			}

			fmt.Printf("\nBoard at %s\n", now.Format("2006-01-02 15:04"))
			fmt.Printf("Leader: %s\n\n", view.Leader)

			for _, column := range []struct {
				title   string
				entries []string
			}{
				{"IRIS", formatEntries(view, view.IRIS)},
				{"Situator", formatEntries(view, view.Situator)},
				{"Apoio", formatEntries(view, view.Apoio)},
			} {
				fmt.Printf("%s:\n", column.title)
				if len(column.entries) == 0 {
					fmt.Println("  (nobody)")
				}
				for _, line := range column.entries {
					fmt.Println("  " + line)
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func weekendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekend",
		Short: "Print the upcoming weekend coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().In(app.loc)
			view, err := services.GetWeekendSchedule(app.ctx, app.database, app.logger, now)
			if err != nil {
				return err
			}

			for _, day := range []services.WeekendDay{view.Saturday, view.Sunday} {
				fmt.Printf("\n%s (%s):\n", day.Date.Format("2006-01-02"), day.Date.Weekday())
				if len(day.Operators) == 0 {
					fmt.Println("  (nobody)")
				}
				for _, op := range day.Operators {
					marker := ""
					if op.Manual {
						marker = " (manual)"
					}
					fmt.Printf("  - %-20s %s-%s  %s%s\n", op.Name, op.StartTime, op.EndTime, op.Focus, marker)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func addAllocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addAllocation <operator_id> <date> <start_time> <end_time> <focus>",
		Short: "Create a manual allocation overriding the automatic schedule",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			leader, _ := cmd.Flags().GetString("leader")
			observation, _ := cmd.Flags().GetString("observation")

			allocation, err := services.AddAllocation(app.ctx, app.database, app.logger, services.NewAllocation{
				OperatorID:  args[0],
				Date:        args[1],
				StartTime:   args[2],
				EndTime:     args[3],
				Focus:       args[4],
				Leader:      leader,
				Observation: observation,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nAllocation created: %s\n", allocation.ID)
			fmt.Printf("  %s on %s, %s-%s (%s)\n\n", allocation.OperatorID, allocation.Date,
				allocation.StartTime, allocation.EndTime, allocation.Focus)
			return nil
		},
	}

	cmd.Flags().String("leader", "", "Responsible leader name")
	cmd.Flags().String("observation", "", "Free-text observation shown on the panel")

	return cmd
}

func addAllocationPeriodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addAllocationPeriod <allocation_id> <start_time> <end_time> <focus>",
		Short: "Append a focus sub-period to a manual allocation",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			observation, _ := cmd.Flags().GetString("observation")

			period, err := services.AddAllocationPeriod(app.ctx, app.database, app.logger, services.NewAllocationPeriod{
				AllocationID: args[0],
				StartTime:    args[1],
				EndTime:      args[2],
				Focus:        args[3],
				Observation:  observation,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nSub-period created: %s (%s-%s, %s)\n\n", period.ID, period.StartTime, period.EndTime, period.Focus)
			return nil
		},
	}

	cmd.Flags().String("observation", "", "Free-text observation shown on the panel")

	return cmd
}

func listOperatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listOperators",
		Short: "List every operator on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			operators, err := app.database.GetOperators(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list operators: %w", err)
			}

			fmt.Printf("\nFound %d operators:\n\n", len(operators))
			for _, op := range operators {
				state := "active"
				if !op.Active {
					state = "inactive"
				}
				group := ""
				if op.RotationGroup != "" {
					group = fmt.Sprintf(" [Group %s]", op.RotationGroup)
				}
				fmt.Printf("- %s (%s) - %s %s-%s%s - %s - %s\n",
					op.Name, op.ID, op.ShiftKind, op.StartTime, op.EndTime, group, op.DefaultFocus, state)
			}
			fmt.Println()

			return nil
		},
	}
}

func setRotationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setRotation <pares|impares>",
		Short: "Set the rotation parity rule and leader names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parity := args[0]
			if parity != "pares" && parity != "impares" {
				return fmt.Errorf("parity rule must be pares or impares, got %q", parity)
			}

			cfg, err := app.database.GetRotationConfig(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch rotation config: %w", err)
			}
			if cfg == nil {
				cfg = &db.RotationConfig{}
			}
			cfg.ParityRule = parity

			for flag, target := range map[string]*string{
				"day-leader-a":     &cfg.DayLeaderA,
				"day-leader-b":     &cfg.DayLeaderB,
				"night-leader":     &cfg.NightLeader,
				"night-leader-a":   &cfg.NightLeaderA,
				"night-leader-b":   &cfg.NightLeaderB,
				"facility-manager": &cfg.FacilityManager,
			} {
				if cmd.Flags().Changed(flag) {
					*target, _ = cmd.Flags().GetString(flag)
				}
			}

			if err := app.database.SaveRotationConfig(app.ctx, cfg); err != nil {
				return fmt.Errorf("failed to save rotation config: %w", err)
			}

			fmt.Printf("\nRotation config saved: group A works %s days\n\n", parity)
			return nil
		},
	}

	cmd.Flags().String("day-leader-a", "", "Day leader for group A days")
	cmd.Flags().String("day-leader-b", "", "Day leader for group B days")
	cmd.Flags().String("night-leader", "", "Night leader fallback name")
	cmd.Flags().String("night-leader-a", "", "Night leader for group A nights")
	cmd.Flags().String("night-leader-b", "", "Night leader for group B nights")
	cmd.Flags().String("facility-manager", "", "Facility manager display name")

	return cmd
}

func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setStatus <operator_id> <status>",
		Short: "Set an operator's live status (Em operação, Pausa, Fora de turno)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.SetStatus(app.ctx, app.database, app.logger, args[0], args[1], time.Now()); err != nil {
				return err
			}
			fmt.Printf("\nStatus updated for %s\n\n", args[0])
			return nil
		},
	}
}

// formatEntries renders one board column for terminal output
func formatEntries(view *services.BoardView, entries []resolver.Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		marker := ""
		if entry.Manual {
			marker = " (manual)"
		}
		observation := ""
		if entry.Observation != "" {
			observation = " - " + entry.Observation
		}
		lines = append(lines, fmt.Sprintf("- %-20s %s-%s  [%s]%s%s",
			entry.Name, entry.StartTime, entry.EndTime,
			view.Statuses[entry.OperatorID], marker, observation))
	}
	return lines
}

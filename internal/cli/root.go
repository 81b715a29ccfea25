package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/config"
	"github.com/Testeur1337/myPomodoro/internal/db"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

var (
	configPath string
	logLevel   string
	logFile    string
	logConsole bool
	logFormat  string

	// cfg is loaded once per invocation by the root command.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "myPomodoro - focus sessions, goals and a daily planner",
	Long: `myPomodoro tracks focus and break sessions against a goal, project and
topic hierarchy, and keeps a daily planner with recurring tasks.

Run 'pomodoro serve' to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// Override with CLI flags if provided
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			loaded.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			loaded.LogConsole = logConsole
		}
		if cmd.Flags().Changed("log-format") {
			loaded.LogFormat = logFormat
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		if err := initLogger(cfg); err != nil {
			return err
		}
		logger.Debug("myPomodoro started", logger.F("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Debug("myPomodoro exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.mypomodoro/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(plannerCmd)
	rootCmd.AddCommand(recurringCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(configCmd)
}

func initLogger(c *config.Config) error {
	logConfig := logger.Config{
		Level:      logger.ParseLevel(c.LogLevel),
		Format:     logger.ParseFormat(c.LogFormat),
		FilePath:   c.LogFile,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    c.LogConsole,
	}
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// app is an open database with the service running on top of it.
type app struct {
	db  *db.DB
	svc *service.Service
}

func openApp(c *config.Config) (*app, error) {
	driver, err := db.ParseDriver(c.Data.Driver)
	if err != nil {
		return nil, err
	}
	database, err := db.Open(driver, c.Data.DSN)
	if err != nil {
		logger.Error("Failed to open database", logger.F("driver", driver), logger.F("error", err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	loc, err := c.Location()
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	svc := service.New(db.NewDatasetStore(database), service.Options{
		Policy:    c.Policy(),
		Location:  loc,
		QueueSize: c.Data.QueueSize,
	})
	return &app{db: database, svc: svc}, nil
}

// Close drains pending writes before closing the database.
func (a *app) Close() {
	a.svc.Close()
	if err := a.db.Close(); err != nil {
		logger.Warn("Failed to close database", logger.F("error", err))
	}
}

// withApp opens the app for the duration of fn.
func withApp(fn func(a *app) error) error {
	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/config"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/scheduler"
	"github.com/Testeur1337/myPomodoro/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the maintenance scheduler",
	Long: `Serve the REST API until interrupted. Scheduled repair and backup jobs
run alongside it when configured.

Examples:
  pomodoro serve
  pomodoro serve --addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return Serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

// Serve runs the API server until ctx is done, then shuts down within the
// configured timeout.
func Serve(ctx context.Context, c *config.Config) error {
	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Maintenance.RepairOnStart {
		if _, err := a.svc.Repair(ctx); err != nil {
			return fmt.Errorf("startup repair failed: %w", err)
		}
	}

	loc, err := c.Location()
	if err != nil {
		return err
	}
	sched := scheduler.New(loc)
	jobs := scheduler.NewJobs(a.svc, a.db, maintenanceOf(c))
	if err := jobs.Register(sched); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(a.svc, a.db)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.F("addr", c.Server.Addr), logger.F("driver", a.db.Driver()))
		errCh <- srv.Start(c.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down", logger.F("timeout", c.Server.ShutdownTimeout.String()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func maintenanceOf(c *config.Config) scheduler.Maintenance {
	return scheduler.Maintenance{
		RepairSchedule:   c.Maintenance.RepairSchedule,
		BackupSchedule:   c.Maintenance.BackupSchedule,
		BackupDir:        c.Maintenance.BackupDir,
		BackupPassphrase: c.Maintenance.BackupPassphrase,
		BackupKeep:       c.Maintenance.BackupKeep,
	}
}

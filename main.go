package main

import (
	"errors"
	"fmt"
	"github.com/HugoJF/boxbox/cmd"
	"github.com/HugoJF/boxbox/database"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "boxbox",
	Short:   "Personal inventory of boxes and the items inside them",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute every box's item count from its items",
	RunE:  runReconcile,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "boxbox.yaml", "path to the YAML configuration")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func runServe(command *cobra.Command, args []string) error {
	srv, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.CloseDatabase(srv.DB)

	srv.Reconciler.StartReconcileCycle()
	defer srv.Reconciler.StopReconcile()

	app := server.NewApp(srv)
	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			srv.LogService.Log.WithField("error", err.Error()).Error("Failed to shut down cleanly")
		}
	}()

	port := srv.Configuration.Server.Port
	srv.LogService.Log.WithFields(logrus.Fields{
		"port":   port,
		"driver": srv.Configuration.Database.Driver,
	}).Info("Starting server")
	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func runReconcile(command *cobra.Command, args []string) error {
	srv, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.CloseDatabase(srv.DB)

	corrected, err := srv.Reconciler.ForceReconcile()
	if err != nil {
		return err
	}
	fmt.Fprintf(command.OutOrStdout(), "corrected %d box(es)\n", corrected)
	return nil
}

// bootstrap loads the configuration, falling back to defaults when the file
// does not exist, and builds the server graph.
func bootstrap() (*cmd.Server, error) {
	cfg, err := config.LoadConfiguration(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	srv, err := InitializeServer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	return srv, nil
}

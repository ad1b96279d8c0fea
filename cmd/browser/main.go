// Path: cmd/browser/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"character-browser/internal/config"
	"character-browser/internal/delivery/tui"
	"character-browser/internal/events"
	"character-browser/internal/graphql"
	"character-browser/internal/i18n"
	"character-browser/internal/listing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "character-browser",
		Short:         "Browse Rick and Morty characters in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("locale", "", "display language (en, de)")
	flags.String("status", "", "initial status filter (Alive, Dead, unknown)")
	flags.String("species", "", "initial species filter")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	mustBind("UI.LOCALE", flags.Lookup("locale"))
	mustBind("UI.STATUS", flags.Lookup("status"))
	mustBind("UI.SPECIES", flags.Lookup("species"))
	mustBind("LOG.LEVEL", flags.Lookup("log-level"))

	return cmd
}

func run(parent context.Context) error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Route logs away from the terminal the UI draws on
	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// 3. Setup Context for graceful shutdown
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Initialize Components
	log.Info("initializing components", "endpoint", cfg.API.Endpoint, "locale", cfg.UI.Locale)
	catalog, err := i18n.NewCatalog(cfg.UI.Locale)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	broker := events.NewBroker()
	tracker := tui.NewScrollTracker(broker)
	fetcher := graphql.NewCachingFetcher(
		graphql.NewClient(cfg.API),
		cfg.Cache.Size,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
	)

	// 5. Initialize the listing controller
	controller := listing.NewController(fetcher, broker, listing.Options{
		Locale:          catalog.Locale(),
		Status:          cfg.UI.Status,
		Species:         cfg.UI.Species,
		Signal:          tracker,
		ScrollThreshold: cfg.UI.ScrollThreshold,
	})
	views, unsubscribe := broker.Subscribe(events.TopicView)
	defer unsubscribe()

	// 6. Start the controller in the background
	ctrlErr := make(chan error, 1)
	go func() {
		ctrlErr <- controller.Start(ctx)
	}()

	// 7. Run the UI until the user quits or a signal arrives
	model := tui.NewModel(controller, catalog, views, tracker, controller.View())
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, runErr := program.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Info("shutdown signal received")
		runErr = nil
	}

	// 8. Stop the controller and wait for in-flight fetches
	controller.Stop()
	if err := <-ctrlErr; err != nil {
		log.Error("listing controller error", "err", err)
	}
	log.Info("character browser exited")
	return runErr
}

// setupLogging configures the package-level logger. The returned closer
// must be closed on exit.
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)
	if cfg.JSON {
		log.SetFormatter(log.JSONFormatter)
	}

	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(cfg.File, "")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

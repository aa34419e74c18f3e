package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve()
	case "subscribers":
		err = exportSubscribers(os.Stdout)
	case "registrations":
		eventID := ""
		if len(os.Args) > 2 {
			eventID = os.Args[2]
		}
		err = exportRegistrations(os.Stdout, eventID)
	case "version":
		fmt.Printf("ecellweb %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ecellweb - the E-Cell FCRIT website

Usage:
  ecellweb [command]

Commands:
  serve                     Run the web server (default)
  subscribers               Write newsletter subscribers as CSV to stdout
  registrations [event-id]  Write event registrations as CSV to stdout
  version                   Print the version
  help                      Show this help message

Configuration is read from the environment and an optional .env file.`)
}

func loadConfig() (ecellweb.SiteConfig, *zap.Logger, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := ecellweb.LoadConfig()
	if err != nil {
		return cfg, nil, err
	}
	logger, err := ecellweb.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func serve() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	app := ecellweb.New(cfg, ecellweb.ViewFuncs{}, ecellweb.WithLogger(logger))
	if err := app.Setup(); err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.String("version", version))
		errc <- app.Echo.Start(cfg.Addr)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}

func openStore() (*ecellweb.Store, error) {
	cfg, err := ecellweb.LoadConfig()
	if err != nil {
		return nil, err
	}
	return ecellweb.NewStore(cfg.DatabasePath)
}

func exportSubscribers(w io.Writer) error {
	_ = godotenv.Load()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	subs, err := store.ListSubscribers()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Write([]string{"email", "name", "interests", "subscribed_at", "status"})
	for _, s := range subs {
		cw.Write([]string{s.Email, s.Name, strings.Join(s.Interests, ";"), s.SubscribedAt.Format(time.RFC3339), s.Status})
	}
	cw.Flush()
	return cw.Error()
}

func exportRegistrations(w io.Writer, eventID string) error {
	_ = godotenv.Load()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	regs, err := store.ListRegistrations(eventID)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "event_id", "name", "email", "phone", "department", "year", "experience", "team_size", "registered_at", "status"})
	for _, r := range regs {
		cw.Write([]string{
			r.ID, r.EventID, r.Name, r.Email, r.Phone, r.Department, r.Year, r.Experience,
			fmt.Sprint(len(r.TeamMembers)), r.RegisteredAt.Format(time.RFC3339), r.Status,
		})
	}
	cw.Flush()
	return cw.Error()
}

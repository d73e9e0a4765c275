package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abrezinsky/eventdash/internal/app"
	"github.com/abrezinsky/eventdash/internal/auth"
	"github.com/abrezinsky/eventdash/internal/config"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

const shutdownTimeout = 10 * time.Second

func printBanner(addr string) {
	fmt.Printf("\n  %s%sEventDash%s %s%s%s\n", bold, cyan, reset, yellow, version, reset)
	fmt.Printf("  %sEvent and check-in dashboard listening on %s%s\n\n", green, addr, reset)
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) string {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}
	appLog.SetLevel(logger.ParseLevel(next))
	return next
}

// toggleHTTPLogging flips request logging and reports the new state
func toggleHTTPLogging(appLog *logger.SlogLogger) bool {
	if appLog.IsHTTPLoggingEnabled() {
		appLog.DisableHTTPLogging()
		return false
	}
	appLog.EnableHTTPLogging()
	return true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	flags := flag.NewFlagSet("eventdash", flag.ExitOnError)
	cfg.RegisterFlags(flags)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, `EventDash - Event and check-in dashboard

Usage:
  eventdash [options]

Settings are read from .env, then EVENTDASH_* variables, then flags.

Options:
`)
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Signals (unix):
  SIGUSR1        Toggle HTTP request logging
  SIGUSR2        Cycle log level (debug → info → warn → error)
`)
	}
	flags.Parse(os.Args[1:])

	if cfg.ShowVersion {
		fmt.Printf("eventdash %s\n", version)
		os.Exit(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLog := logger.NewWithOptions(logger.Options{
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
		HTTPLogging: cfg.HTTPLog,
	})

	// Setup admin authentication
	password := cfg.AdminPassword
	if password == "" {
		password = auth.GeneratePassword()
		appLog.Info("Admin password generated", "email", cfg.AdminEmail, "password", password)
	}
	adminAuth := auth.New(models.User{ID: "1", Name: cfg.AdminName, Email: cfg.AdminEmail}, password)

	a, err := app.New(appLog, cfg, adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}

	printBanner(a.BaseURL())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go listenForControlSignals(appLog)

	select {
	case err := <-serverErr:
		a.Close()
		if err != nil {
			log.Fatal(err)
		}
	case sig := <-stop:
		appLog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			appLog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

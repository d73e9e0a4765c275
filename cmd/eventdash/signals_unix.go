//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/abrezinsky/eventdash/internal/logger"
)

// listenForControlSignals adjusts logging at runtime: SIGUSR1 toggles
// HTTP request logging, SIGUSR2 cycles the log level
func listenForControlSignals(appLog *logger.SlogLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGUSR2)
	for sig := range sigs {
		switch sig {
		case syscall.SIGUSR1:
			appLog.Info("HTTP logging toggled", "enabled", toggleHTTPLogging(appLog))
		case syscall.SIGUSR2:
			level := cycleLogLevel(appLog)
			appLog.Warn("Log level changed", "level", level)
		}
	}
}

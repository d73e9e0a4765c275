//go:build windows

package main

import "github.com/abrezinsky/eventdash/internal/logger"

// listenForControlSignals is a no-op on Windows, which has no user signals
func listenForControlSignals(appLog *logger.SlogLogger) {}

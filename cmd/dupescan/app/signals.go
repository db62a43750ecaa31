// Signal handling for graceful shutdown. A first SIGINT/SIGTERM cancels the
// running search so it can unwind cleanly; a second one forces the process
// to exit.
package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sonemaro/dupescan/pkg/logger"
)

// setupSignalHandling initializes signal handling for graceful shutdown
func (a *App) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	go a.handleSignals(sigChan)
}

// handleSignals processes incoming system signals
func (a *App) handleSignals(sigChan chan os.Signal) {
	var shutdownInitiated atomic.Bool

	for sig := range sigChan {
		a.log.WithFields(logger.Fields{
			"signal": sig.String(),
		}).Debug("Received system signal")

		if shutdownInitiated.CompareAndSwap(false, true) {
			a.log.Info("Interrupt received, cancelling search")
			a.Shutdown()
			continue
		}

		a.log.Warn("Second interrupt received, forcing exit")
		os.Exit(1)
	}
}

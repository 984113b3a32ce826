package cmdutil

import (
	"os"
	"os/signal"
	"syscall"
)

// InterruptChan returns a channel closed on SIGINT or SIGTERM.
func InterruptChan() <-chan struct{} {
	done := make(chan struct{})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		close(done)
	}()

	return done
}

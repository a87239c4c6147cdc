// Command editor is the interactive document editing client. It reads
// commands from standard input, drives a viewport session against the
// mutation service and writes the composed view to a PNG file after
// every change.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/pdf-editor/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("SERVICE_CONFIG_DIR"))
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	cfg.Logging.Service = "pdf-editor"
	if err := cfg.FinalizeEditor(); err != nil {
		log.Fatal("config finalize failed: ", err)
	}

	app, err := NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatal("editor init failed: ", err)
	}

	app.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go app.ReadCommands(os.Stdin)

	select {
	case <-sigChan:
	case <-app.Done():
	}

	if err := app.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed: ", err)
	}
}

// Command server runs the document mutation service.
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

	cfg.Logging.Service = "pdf-editor-server"
	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed: ", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		log.Fatal("server init failed: ", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("server start failed: ", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed: ", err)
	}

	log.Println("server stopped gracefully")
}

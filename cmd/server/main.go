package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/navkit/navd/internal/infrastructure/config"
	"github.com/navkit/navd/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("received signal %v, shutting down", sig)
		if err := srv.Close(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

// Command frontend serves the browser frontend's static assets over
// plain HTTP with permissive CORS headers, so the page can be loaded
// from http://localhost instead of file:// and still reach the API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filebridge/config"
	"filebridge/logger"
	"filebridge/static"
)

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := cfg.Static.Validate(); err != nil {
		log.Fatal("Invalid static server configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	srv := static.New(cfg.Static, log)
	if err := srv.Start(); err != nil {
		// Typically the port is already in use. Fail fast, no retry.
		log.Fatal("Failed to start frontend server", map[string]interface{}{
			"port":  cfg.Static.Port,
			"error": err.Error(),
		})
	}

	fmt.Printf("Starting frontend server on http://localhost:%d\n", cfg.Static.Port)
	fmt.Printf("Serving files from: %s\n", cfg.Static.Root)
	fmt.Println("Press Ctrl+C to stop the server")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	fmt.Println("\nServer stopped.")
}

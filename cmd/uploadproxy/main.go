// Command uploadproxy runs the authenticated upload service the
// frontend talks to: token exchange, health, and multipart file
// uploads persisted to a local directory with a JSON metadata log.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"filebridge/api"
	"filebridge/auth"
	"filebridge/config"
	"filebridge/filestore"
	"filebridge/logger"
)

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := cfg.Proxy.Validate(); err != nil {
		log.Fatal("Invalid proxy configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := cfg.Auth.Validate(); err != nil {
		log.Fatal("Invalid auth configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	authSvc, err := auth.NewService(cfg.Auth)
	if err != nil {
		log.Fatal("Failed to initialize auth service", map[string]interface{}{
			"error": err.Error(),
		})
	}

	store := filestore.NewDiskFileStore(cfg.Proxy.UploadDir, cfg.Proxy.MetadataFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := api.NewServer(cfg.Proxy, authSvc, store)
	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start upload proxy", map[string]interface{}{
			"port":  cfg.Proxy.Port,
			"error": err.Error(),
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := srv.Shutdown(); err != nil {
		log.Error("Shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

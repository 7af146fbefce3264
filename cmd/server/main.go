/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the inventory consolidation HTTP server.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Create API handler (engine + in-memory result cache)
  3. Configure HTTP router
  4. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

ENVIRONMENT:
  No environment variables. All config via flags. Analyses live only in
  process memory; restarting the server clears the current result.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/consolidation-engine/api"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	handler := api.NewHandler(log)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	// Start server in a goroutine so we can listen for signals
	go func() {
		log.WithField("port", *port).Info("consolidation engine listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
		os.Exit(1)
	}
	log.Info("server stopped")
}

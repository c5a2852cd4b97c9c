package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worklinehq/workline/config"
	"github.com/worklinehq/workline/db"
	"github.com/worklinehq/workline/services"
)

type Server struct {
	Config                 *config.Config
	AuthRepository         db.AuthRepository
	MessageRepository      db.MessageRepository
	NotificationRepository db.NotificationRepository
	MessageService         services.MessageService
	NotificationService    services.NotificationService
	Hub                    *Hub
	DB                     *db.GormDB
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Server started on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	gracefulShutdown(srv)
}

// gracefulShutdown blocks until an interrupt arrives, then gives in-flight
// requests a short window to finish. Websocket clients are cut off with the
// server; the registry is process-local and rebuilt on restart.
func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

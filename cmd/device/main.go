// Command device runs the simulated LED/fan controller the panel talks to.
//
// @title                       ENET I/O device API
// @version                     1.0
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "enet_panel/docs"
	"enet_panel/internal/config"
	"enet_panel/internal/handlers"
	"enet_panel/internal/logger"
	"enet_panel/internal/repository"
	"enet_panel/internal/repository/db"
	"enet_panel/internal/server"
	"enet_panel/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("device", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.Get(cfg.Log.Level)

	conn, err := openDB(cfg.Device.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Automatic:  cfg.Device.Automatic,
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Simulator.Run(ctx, cfg.Device.SimTick)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Device.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("device.db_path not set; using default file", "default", "app.db")
		path = "app.db"
	}
	return db.InitDB(path)
}

// runHTTPServer serves the device routes on a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("device listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the simulator and
// drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

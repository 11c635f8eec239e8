package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"machine_maintenance/internal/handlers"
	"machine_maintenance/internal/logger"
	"machine_maintenance/internal/repository"
	"machine_maintenance/internal/repository/db"
	"machine_maintenance/internal/server"
	"machine_maintenance/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger first so config errors are reported through it
	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	sqldb, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqldb.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqldb)
	services := service.NewService(repos, serviceOptions())
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// serviceOptions collects the deployment-specific knobs out of viper.
func serviceOptions() service.Options {
	opts := service.Options{
		SigningKey:   viper.GetString("auth.signing_key"),
		DeviceAPIKey: viper.GetString("device.api_key"),
	}
	if hours := viper.GetInt("auth.token_ttl_hours"); hours > 0 {
		opts.TokenTTL = time.Duration(hours) * time.Hour
	}
	return opts
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "maintenance.db")
		dbPath = "maintenance.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

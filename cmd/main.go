package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menu-system/internal/config"
	"menu-system/internal/database"
	"menu-system/internal/logger"
	"menu-system/internal/messaging"
	"menu-system/internal/services/item"
	"menu-system/internal/services/menu"
	"menu-system/internal/services/order"
	"menu-system/internal/services/setting"
	"menu-system/internal/validation"
)

// application holds the wired domain services. Boundary transports plug in
// here; only the operational endpoints are exposed directly.
type application struct {
	menus    *menu.Service
	items    *item.Service
	orders   *order.Service
	settings *setting.Service
}

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the configuration file")
		port       = flag.Int("port", 3000, "HTTP port for the health endpoint")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("menu-system")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting menu system", requestID, map[string]any{
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *port); err != nil {
		log.Error("service_failed", "Menu system failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The broker is optional: order events are best effort, so a missing
	// RabbitMQ degrades to a quiet service instead of a dead one.
	var publisher order.EventPublisher
	conn, err := messaging.New(cfg, log)
	if err != nil {
		log.Warn("rabbitmq_unavailable", "Continuing without order events", requestID, map[string]any{
			"error": err.Error(),
		})
	} else {
		defer conn.Close()
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	menuRepo := menu.NewRepository(db, log)
	itemRepo := item.NewRepository(db, log)
	orderRepo := order.NewRepository(db, log)
	settingRepo := setting.NewRepository(db, log)

	rules := validation.NewBusinessRuleValidator(menuRepo)
	refs := validation.NewCrossEntityValidator(itemRepo, orderRepo)

	app := &application{
		menus:    menu.NewService(menuRepo, itemRepo, rules, refs, log),
		items:    item.NewService(itemRepo, rules, refs, log),
		orders:   order.NewService(orderRepo, rules, refs, publisher, log),
		settings: setting.NewService(settingRepo, rules, log),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "database": "up", "rabbitmq": "up"}
		if err := db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
		}
		if publisher == nil || conn == nil || conn.IsClosed() {
			status["rabbitmq"] = "down"
		}
		w.Header().Set("Content-Type", "application/json")
		if status["status"] != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		// stamp a request id so any repairs triggered by the listing
		// correlate in the logs
		ctx := order.WithRequestID(r.Context(), logger.GenerateRequestID())
		statistics, err := app.orders.Statistics(ctx)
		if err != nil {
			http.Error(w, "failed to compute statistics", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(statistics)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Menu system started on port %d", port), requestID, map[string]any{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

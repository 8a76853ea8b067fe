package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"asistencia/internal/alert"
	"asistencia/internal/attendance"
	attmetrics "asistencia/internal/attendance/metrics"
	"asistencia/internal/employee"
	"asistencia/internal/platform/config"
	"asistencia/internal/platform/httpserver"
	"asistencia/internal/platform/logger"
	"asistencia/internal/platform/metrics"
	"asistencia/internal/qr"
	"asistencia/internal/report"
	"asistencia/internal/schedule"
	httptransport "asistencia/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business rules
// live in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		eventStore    attendance.EventStore
		attemptStore  attendance.AttemptStore
		employeeStore employee.Store
		qrStore       qr.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		eventStore = attendance.NewPostgresEventStore(db)
		attemptStore = attendance.NewPostgresAttemptStore(db)
		employeeStore = employee.NewPostgresStore(db)

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		qrStore = qr.NewPostgresStore(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		eventStore = attendance.NewInMemoryEventStore()
		attemptStore = attendance.NewInMemoryAttemptStore()
		employeeStore = employee.NewInMemoryStore()
		qrStore = qr.NewInMemoryStore()
	}

	var qrOpts []qr.Option
	if cfg.QRSingleUse {
		var usage qr.UsageStore
		if cfg.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer client.Close()
			if err := client.Ping(ctx).Err(); err != nil {
				log.Error("failed to ping redis", "error", err)
				os.Exit(1)
			}
			usage = qr.NewRedisUsageStore(client)
		} else {
			log.Warn("QR_SINGLE_USE set without REDIS_ADDR, tracking usage in memory")
			usage = qr.NewInMemoryUsageStore()
		}
		qrOpts = append(qrOpts, qr.WithSingleUse(usage))
	}

	appMetrics := metrics.New()
	markMetrics := attmetrics.New()

	qrService := qr.NewService(cfg.SecretKey, cfg.QRLifetime, qrStore, qrOpts...)
	gate := schedule.NewGate(cfg.Schedule, employeeStore)
	markService := attendance.NewService(
		attendance.Site{Lat: cfg.SiteLat, Lon: cfg.SiteLon, RadiusM: cfg.GPSRadiusM},
		qrService,
		gate,
		eventStore,
		attemptStore,
		log,
		markMetrics,
	)
	reportService := report.NewService(eventStore, employeeStore, report.NewFileCSVWriter("exports"), log)

	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		publisher, err := alert.NewKafkaPublisher(ctx, brokers)
		if err != nil {
			log.Error("failed to connect alert publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		notifier := alert.NewNotifier(log)
		markService.SetAttemptSink(notifier)
		worker := alert.NewWorker(notifier, publisher, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("alert worker stopped", "error", err)
			}
		}()
		log.Info("alert publisher enabled", "brokers", cfg.KafkaBrokers, "topic", alert.Topic)
	}

	handler := httptransport.NewHandler(cfg, qrService, markService, reportService, employeeStore, log, appMetrics)
	router := httptransport.NewRouter(handler)
	srv := httpserver.New(cfg.Addr, router, log)

	log.Info("starting asistencia", "addr", cfg.Addr, "single_use_qr", cfg.QRSingleUse)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	cancel()
}

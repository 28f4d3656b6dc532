package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"aquasolar-cloud/internal/config"
	httpapi "aquasolar-cloud/internal/http"
	logpkg "aquasolar-cloud/internal/logger"
	"aquasolar-cloud/internal/mqtt"
	"aquasolar-cloud/internal/notify"
	"aquasolar-cloud/internal/repository"
	"aquasolar-cloud/internal/service"
	"aquasolar-cloud/internal/store"
	"aquasolar-cloud/internal/telemetry"
)

func main() {
	cfg := config.Load()

	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "aquasolar-cloud")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting aquasolar-cloud service")

	// Postgres holds the durable streams; there is no degraded mode without it.
	db, err := store.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	pingCancel()
	kv := store.NewRedisKV(redisClient)

	statusRepo := repository.NewKVStatusRepository(kv)
	commandsRepo := repository.NewKVCommandsRepository(kv)
	logsRepo := repository.NewPostgresLogsRepository(db)
	alertsRepo := repository.NewPostgresAlertsRepository(db)
	consumptionRepo := repository.NewPostgresConsumptionRepository(db, log)
	tenantsRepo := repository.NewPostgresTenantsRepository(db)

	var notifier telemetry.Notifier
	if cfg.SMS.Enabled {
		notifier = notify.NewSMSClient(cfg.SMS, log)
		log.Info("Alert SMS gateway enabled", zap.String("sender", cfg.SMS.Sender))
	}

	processor := telemetry.NewProcessor(cfg.Telemetry, telemetry.NewStateStore(),
		statusRepo, logsRepo, alertsRepo, consumptionRepo, commandsRepo, notifier, log)
	projector := service.NewStatusProjector(statusRepo, consumptionRepo, cfg.Telemetry.LivenessWindow, log)
	pump := service.NewPumpController(statusRepo, commandsRepo, logsRepo, log)
	reports := service.NewReportBuilder(consumptionRepo, logsRepo, alertsRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterDeviceRoutes(httpapi.NewDeviceHandler(processor, commandsRepo, pump, log))
	router.RegisterDashboardRoutes(httpapi.NewStatusHandler(projector, pump, log))
	router.RegisterReportRoutes(httpapi.NewReportHandler(reports, log))
	router.RegisterTenantRoutes(httpapi.NewTenantsHandler(tenantsRepo, log))
	router.RegisterAlertRoutes(httpapi.NewAlertsHandler(alertsRepo, log))

	health := httpapi.NewHealthHandler(db, redisClient, log)
	health.EnablePprof(os.Getenv("PPROF_ENABLED") == "true")
	router.RegisterHealthRoutes(health)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional MQTT bridge: same pipeline as HTTP push, minus command delivery.
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT bridge enabled but connection failed, continuing without it", zap.Error(err))
		} else {
			mqttClient = client
			consumer := mqtt.NewConsumer(client, cfg.MQTT.Topic, processor, log)
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Error("MQTT consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		log.Error("HTTP server error", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	_ = redisClient.Close()
	_ = db.Close()

	log.Info("aquasolar-cloud service stopped")
}

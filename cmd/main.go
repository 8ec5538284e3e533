package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addBlockedRangeHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/add_blocked_range"
	createAppointmentHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/delete_appointment"
	generateFictitiousHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/generate_fictitious"
	getAppointmentHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/get_appointments"
	getAvailabilityHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/get_availability"
	getSettingsHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/get_settings"
	removeBlockedRangeHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/remove_blocked_range"
	updateAppointmentStatusHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/update_appointment_status"
	updateSettingsHandler "github.com/m04kA/CPC-BookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/CPC-BookingService/internal/api/middleware"
	"github.com/m04kA/CPC-BookingService/internal/config"
	appointmentRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/CPC-BookingService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/CPC-BookingService/internal/service/appointments"
	settingsService "github.com/m04kA/CPC-BookingService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/CPC-BookingService/internal/usecase/create_appointment"
	generateFictitiousUC "github.com/m04kA/CPC-BookingService/internal/usecase/generate_fictitious"
	getAvailabilityUC "github.com/m04kA/CPC-BookingService/internal/usecase/get_availability"
	"github.com/m04kA/CPC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CPC-BookingService/pkg/logger"
	"github.com/m04kA/CPC-BookingService/pkg/metrics"
	"github.com/m04kA/CPC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/CPC-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CPC-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем SMTP-клиент (если настроен)
	var notifier appointmentsService.Notifier
	if cfg.SMTP.Host != "" {
		notifier = mailer.NewClient(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.From,
			log,
		)
		log.Info("SMTP client initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Warn("SMTP is not configured, confirmation emails disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		notifier,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		txMgr,
		log,
	)
	generateFictitiousUseCase := generateFictitiousUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	generateFictitious := generateFictitiousHandler.NewHandler(generateFictitiousUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	addBlockedRange := addBlockedRangeHandler.NewHandler(settingsSvc, log)
	removeBlockedRange := removeBlockedRangeHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (опционально аннотируются админским токеном)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.Identify(cfg.Auth.AdminToken))

	// Доступные слоты на дату
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи на прием
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Настройки расписания нужны публичному календарю (дни приема, окно бронирования)
	public.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(cfg.Auth.AdminToken))

	// --- Записи ---
	admin.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/generate-fictitious", generateFictitious.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Настройки расписания ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/blocked-ranges", addBlockedRange.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/settings/blocked-ranges/{id}", removeBlockedRange.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

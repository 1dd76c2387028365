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

	cancelAppointmentHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/create_booking"
	createExternalBookingHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/create_external_booking"
	getAppointmentHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/get_appointment"
	getAthleteAppointmentsHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/get_athlete_appointments"
	getAvailableSlotsHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/get_available_slots"
	getCoachAppointmentsHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/get_coach_appointments"
	getTemplateHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/get_template"
	updateTemplateHandler "github.com/m04kA/CSP-BookingService/internal/api/handlers/update_template"
	"github.com/m04kA/CSP-BookingService/internal/api/middleware"
	"github.com/m04kA/CSP-BookingService/internal/config"
	"github.com/m04kA/CSP-BookingService/internal/events"
	appointmentRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/appointment"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	billingServiceClient "github.com/m04kA/CSP-BookingService/internal/integrations/billingservice"
	notifyServiceClient "github.com/m04kA/CSP-BookingService/internal/integrations/notifyservice"
	appointmentsService "github.com/m04kA/CSP-BookingService/internal/service/appointments"
	templateService "github.com/m04kA/CSP-BookingService/internal/service/template"
	createBookingUC "github.com/m04kA/CSP-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/CSP-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/CSP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CSP-BookingService/pkg/logger"
	"github.com/m04kA/CSP-BookingService/pkg/metrics"
	"github.com/m04kA/CSP-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/CSP-BookingService/pkg/txmanager"
)

const eventDeliveryTimeout = 10 * time.Second

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

	log.Info("Starting CSP-BookingService...")
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

	// Инициализируем интеграционных клиентов
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	billingClient := billingServiceClient.NewClient(
		cfg.BillingService.URL,
		time.Duration(cfg.BillingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds, BillingService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout, cfg.BillingService.URL, cfg.BillingService.Timeout)

	// Диспетчер доменных событий: уведомления и биллинг после коммита
	dispatcher := events.NewDispatcher(
		log,
		eventDeliveryTimeout,
		events.NewNotificationSubscriber(notifyClient, log),
		events.NewBillingSubscriber(billingClient, log),
	)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		templateRepository    *templateRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		dispatcher,
		log,
	)
	templateSvc := templateService.NewService(
		templateRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		templateRepository,
		txMgr,
		dispatcher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		templateRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createExternalBooking := createExternalBookingHandler.NewHandler(createBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAthleteAppointments := getAthleteAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getCoachAppointments := getCoachAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getTemplate := getTemplateHandler.NewHandler(templateSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(templateSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов тренера на день
	api.HandleFunc("/coaches/{coachId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Внешнее бронирование (клиент без аккаунта)
	api.HandleFunc("/coaches/{coachId}/external-bookings",
		createExternalBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования атлетом
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей атлета
	protected.HandleFunc("/athletes/{athleteId}/appointments", getAthleteAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет тренера ---
	// Расписание тренера с фильтрами
	protected.HandleFunc("/coaches/{coachId}/appointments", getCoachAppointments.Handle).Methods(http.MethodGet)

	// Шаблон доступности
	protected.HandleFunc("/coaches/{coachId}/template", getTemplate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/coaches/{coachId}/template", updateTemplate.Handle).Methods(http.MethodPut)

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

	// Дожидаемся доставки опубликованных событий
	dispatcher.Wait()

	log.Info("Server stopped gracefully")
}

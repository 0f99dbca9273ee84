package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	employeesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/employees"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_dates"
	getSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_settings"
	getTimeSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_time_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	locationsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/locations"
	servicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/services"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	dayOffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/dayoff"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/notifications"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	getTimeSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_time_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
	"github.com/m04kA/SMC-AppointmentService/pkg/clock"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ratelimit"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Без метрик обертка только пробрасывает транзакцию через контекст
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, log).
		WithRetries(cfg.Database.TxMaxRetries, txmanager.DefaultRetryBackoff)

	// Часовой пояс бизнеса
	businessClock, err := clock.New(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Redis: кэш каталога и общие лимиты попыток
	var (
		appCache *cache.Cache
		limiter  ratelimit.Limiter
	)
	limiterCfg := ratelimit.Config{
		Max:    cfg.Booking.RateLimitMax,
		Window: time.Duration(cfg.Booking.RateLimitWindow) * time.Second,
		Prefix: cfg.Redis.Prefix + "ratelimit:",
	}

	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		appCache = cache.New(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second, cfg.Redis.Prefix, log)
		limiter = ratelimit.NewRedisLimiter(redisClient, limiterCfg)
		log.Info("Redis enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	} else {
		appCache = cache.Disabled()
		limiter = ratelimit.NewMemoryLimiter(limiterCfg, businessClock)
		log.Info("Redis disabled, using in-memory rate limiter")
	}

	// Инициализируем репозитории
	locationDaysOff := dayOffRepo.NewLocationRepository(wrappedDB)
	employeeDaysOff := dayOffRepo.NewEmployeeRepository(wrappedDB)
	locationRepository := locationRepo.NewRepository(wrappedDB, locationDaysOff)
	employeeRepository := employeeRepo.NewRepository(wrappedDB, employeeDaysOff)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// События и уведомления
	bus := events.NewBus(log)

	templates, err := notifications.LoadTemplates(cfg.Notifications.TemplatesFile)
	if err != nil {
		log.Fatal("Failed to load notification templates: %v", err)
	}

	dispatcher := notifications.NewDispatcher(
		notifications.Config{
			Enabled:         cfg.Notifications.Enabled,
			AdminRecipients: cfg.Notifications.AdminRecipients,
			AdminEmail:      cfg.Notifications.AdminEmail,
			Site: notifications.Site{
				Name: cfg.Notifications.SiteName,
				URL:  cfg.Notifications.SiteURL,
			},
			QueueSize: cfg.Notifications.QueueSize,
		},
		templates,
		appointmentRepository,
		serviceRepository,
		employeeRepository,
		locationRepository,
		notifications.NewLogMailer(log),
		businessClock.Location(),
		log,
		metricsCollector,
	)
	dispatcher.Subscribe(bus)
	log.Info("Notifications initialized (enabled=%t, templates=%d)", cfg.Notifications.Enabled, len(templates))

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cfg.Booking.Settings(), appCache, log)
	catalogSvc := catalogService.NewService(
		locationRepository,
		employeeRepository,
		serviceRepository,
		locationDaysOff,
		employeeDaysOff,
		txMgr,
		appCache,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, bus, log)

	// Инициализируем use cases
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		locationRepository,
		settingsSvc,
		businessClock,
		log,
	)

	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(
		locationRepository,
		serviceRepository,
		employeeRepository,
		appointmentRepository,
		settingsSvc,
		businessClock,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		limiter,
		serviceRepository,
		employeeRepository,
		locationRepository,
		appointmentRepository,
		settingsSvc,
		txMgr,
		bus,
		businessClock,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)

	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	locations := locationsHandler.NewHandler(catalogSvc, log)
	employees := employeesHandler.NewHandler(catalogSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}
	r.Use(middleware.RequestID(log, cfg.Server.TrustProxy))
	r.Use(middleware.Admin(cfg.Admin.Token))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not configured, admin routes are unavailable")
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (форма записи)
	// ============================================================

	api.HandleFunc("/locations", locations.List).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}", locations.Get).Methods(http.MethodGet)
	api.HandleFunc("/services", services.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", services.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees", employees.List).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}", employees.Get).Methods(http.MethodGet)

	// Доступные даты локации
	api.HandleFunc("/locations/{locationId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/locations/{locationId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Локации ---
	admin.HandleFunc("/locations", locations.List).Methods(http.MethodGet)
	admin.HandleFunc("/locations/{locationId}", locations.Get).Methods(http.MethodGet)
	admin.HandleFunc("/locations", locations.Create).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{locationId}", locations.Update).Methods(http.MethodPut)
	admin.HandleFunc("/locations/{locationId}", locations.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/locations/{locationId}/days-off", locations.AddDayOff).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{locationId}/days-off/{dayOffId}", locations.DeleteDayOff).Methods(http.MethodDelete)

	// --- Сотрудники ---
	admin.HandleFunc("/employees", employees.List).Methods(http.MethodGet)
	admin.HandleFunc("/employees/{employeeId}", employees.Get).Methods(http.MethodGet)
	admin.HandleFunc("/employees", employees.Create).Methods(http.MethodPost)
	admin.HandleFunc("/employees/{employeeId}", employees.Update).Methods(http.MethodPut)
	admin.HandleFunc("/employees/{employeeId}", employees.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/employees/{employeeId}/days-off", employees.AddDayOff).Methods(http.MethodPost)
	admin.HandleFunc("/employees/{employeeId}/days-off/{dayOffId}", employees.DeleteDayOff).Methods(http.MethodDelete)

	// --- Услуги ---
	admin.HandleFunc("/services", services.List).Methods(http.MethodGet)
	admin.HandleFunc("/services/{serviceId}", services.Get).Methods(http.MethodGet)
	admin.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", services.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", services.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return dispatcher.Run(gCtx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("%v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

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

	createBookingHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/create_booking"
	createVehicleHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/create_vehicle"
	createVehicleGroupHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/create_vehicle_group"
	deleteBookingHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/delete_booking"
	deleteVehicleHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/delete_vehicle"
	deleteVehicleGroupHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/delete_vehicle_group"
	exportImportErrorsHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/export_import_errors"
	getBookingHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/get_booking"
	getImportTemplateHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/get_import_template"
	getVehicleHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/get_vehicle"
	importBookingsHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/import_bookings"
	listBookingsHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/list_bookings"
	listVehicleGroupsHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/list_vehicle_groups"
	listVehiclesHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/list_vehicles"
	updateBookingHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/update_booking"
	updateVehicleHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/update_vehicle"
	updateVehicleGroupHandler "github.com/m04kA/SMC-FleetService/internal/api/handlers/update_vehicle_group"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/config"
	bookingRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehicle"
	vehicleGroupRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehiclegroup"
	staffServiceClient "github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	bookingsService "github.com/m04kA/SMC-FleetService/internal/service/bookings"
	groupsService "github.com/m04kA/SMC-FleetService/internal/service/groups"
	vehiclesService "github.com/m04kA/SMC-FleetService/internal/service/vehicles"
	exportImportErrorsUC "github.com/m04kA/SMC-FleetService/internal/usecase/export_import_errors"
	getImportTemplateUC "github.com/m04kA/SMC-FleetService/internal/usecase/get_import_template"
	importBookingsUC "github.com/m04kA/SMC-FleetService/internal/usecase/import_bookings"
	"github.com/m04kA/SMC-FleetService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetService/pkg/logger"
	"github.com/m04kA/SMC-FleetService/pkg/metrics"
	"github.com/m04kA/SMC-FleetService/pkg/migrate"
	"github.com/m04kA/SMC-FleetService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FleetService/pkg/txmanager"
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

	log.Info("Starting SMC-FleetService...")
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

	// Применяем миграции схемы
	if cfg.Database.MigrationsDir != "" {
		if err := migrate.Run(context.Background(), db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied (dir=%s)", cfg.Database.MigrationsDir)
	}

	// Инициализируем клиента сервиса сотрудников
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		vehicleRepository *vehicleRepo.Repository
		groupRepository   *vehicleGroupRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		groupRepository = vehicleGroupRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		groupRepository = vehicleGroupRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		staffClient,
		log,
	)
	vehicleSvc := vehiclesService.NewService(
		vehicleRepository,
		groupRepository,
		bookingRepository,
		staffClient,
		txMgr,
		log,
	)
	groupSvc := groupsService.NewService(
		groupRepository,
		vehicleRepository,
		staffClient,
		txMgr,
		log,
	)

	// Инициализируем use cases импорта
	importBookingsUseCase := importBookingsUC.NewUseCase(
		bookingRepository,
		staffClient,
		log,
	)
	if cfg.Metrics.Enabled {
		importBookingsUseCase.WithMetrics(metricsCollector.NewImportRecorder(cfg.Metrics.ServiceName))
	}
	getImportTemplateUseCase := getImportTemplateUC.NewUseCase(staffClient, log)
	exportImportErrorsUseCase := exportImportErrorsUC.NewUseCase(staffClient, log)

	// Инициализируем handlers
	importBookings := importBookingsHandler.NewHandler(importBookingsUseCase, log)
	getImportTemplate := getImportTemplateHandler.NewHandler(getImportTemplateUseCase, log)
	exportImportErrors := exportImportErrorsHandler.NewHandler(exportImportErrorsUseCase, log)

	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	createVehicle := createVehicleHandler.NewHandler(vehicleSvc, log)
	getVehicle := getVehicleHandler.NewHandler(vehicleSvc, log)
	listVehicles := listVehiclesHandler.NewHandler(vehicleSvc, log)
	updateVehicle := updateVehicleHandler.NewHandler(vehicleSvc, log)
	deleteVehicle := deleteVehicleHandler.NewHandler(vehicleSvc, log)

	createVehicleGroup := createVehicleGroupHandler.NewHandler(groupSvc, log)
	listVehicleGroups := listVehicleGroupsHandler.NewHandler(groupSvc, log)
	updateVehicleGroup := updateVehicleGroupHandler.NewHandler(groupSvc, log)
	deleteVehicleGroup := deleteVehicleGroupHandler.NewHandler(groupSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Импорт броней ---
	// Маршруты импорта регистрируем раньше маршрутов с {bookingId},
	// чтобы "import" не разбирался как ID.
	// Импорт броней из xlsx файла
	protected.HandleFunc("/fleet/bookings/import", importBookings.Handle).Methods(http.MethodPost)

	// Шаблон файла импорта
	protected.HandleFunc("/fleet/bookings/import/template", getImportTemplate.Handle).Methods(http.MethodGet)

	// Выгрузка отчета об ошибках импорта
	protected.HandleFunc("/fleet/bookings/import/errors/export", exportImportErrors.Handle).Methods(http.MethodPost)

	// --- Брони ---
	// Создание брони вручную
	protected.HandleFunc("/fleet/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список броней с фильтрами
	protected.HandleFunc("/fleet/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение брони по ID
	protected.HandleFunc("/fleet/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Обновление брони
	protected.HandleFunc("/fleet/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Удаление брони
	protected.HandleFunc("/fleet/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Автомобили ---
	// Добавление автомобиля в парк
	protected.HandleFunc("/fleet/vehicles", createVehicle.Handle).Methods(http.MethodPost)

	// Список автомобилей с фильтрами
	protected.HandleFunc("/fleet/vehicles", listVehicles.Handle).Methods(http.MethodGet)

	// Получение автомобиля по ID
	protected.HandleFunc("/fleet/vehicles/{vehicleId}", getVehicle.Handle).Methods(http.MethodGet)

	// Обновление автомобиля
	protected.HandleFunc("/fleet/vehicles/{vehicleId}", updateVehicle.Handle).Methods(http.MethodPut)

	// Удаление автомобиля
	protected.HandleFunc("/fleet/vehicles/{vehicleId}", deleteVehicle.Handle).Methods(http.MethodDelete)

	// --- Группы автопарка ---
	// Создание группы
	protected.HandleFunc("/fleet/vehicle-groups", createVehicleGroup.Handle).Methods(http.MethodPost)

	// Список групп
	protected.HandleFunc("/fleet/vehicle-groups", listVehicleGroups.Handle).Methods(http.MethodGet)

	// Обновление группы
	protected.HandleFunc("/fleet/vehicle-groups/{groupId}", updateVehicleGroup.Handle).Methods(http.MethodPut)

	// Удаление группы
	protected.HandleFunc("/fleet/vehicle-groups/{groupId}", deleteVehicleGroup.Handle).Methods(http.MethodDelete)

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

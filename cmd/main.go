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

	cancelAppointmentHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/complete_appointment"
	createOrderHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/create_order"
	createSlotHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/create_slot"
	deleteOrderHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/delete_order"
	deleteSlotHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/delete_slot"
	getClientAppointmentsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_client_appointments"
	getClientOrdersHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_client_orders"
	getDoctorAppointmentsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_doctor_appointments"
	getDoctorSlotsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_doctor_slots"
	getOrderHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_order"
	getWeekAppointmentsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_week_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/reschedule_appointment"
	transitionOrderHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/transition_order"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/update_appointment_status"
	updateSlotHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	"github.com/m04kA/SMC-CounselingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
	slotRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/slot"
	doctorDirectoryClient "github.com/m04kA/SMC-CounselingService/internal/integrations/doctordirectory"
	serviceCatalogClient "github.com/m04kA/SMC-CounselingService/internal/integrations/servicecatalog"
	appointmentsService "github.com/m04kA/SMC-CounselingService/internal/service/appointments"
	consistencyService "github.com/m04kA/SMC-CounselingService/internal/service/consistency"
	ordersService "github.com/m04kA/SMC-CounselingService/internal/service/orders"
	slotsService "github.com/m04kA/SMC-CounselingService/internal/service/slots"
	cancelAppointmentUC "github.com/m04kA/SMC-CounselingService/internal/usecase/cancel_appointment"
	completeAppointmentUC "github.com/m04kA/SMC-CounselingService/internal/usecase/complete_appointment"
	createOrderUC "github.com/m04kA/SMC-CounselingService/internal/usecase/create_order"
	rescheduleAppointmentUC "github.com/m04kA/SMC-CounselingService/internal/usecase/reschedule_appointment"
	transitionOrderUC "github.com/m04kA/SMC-CounselingService/internal/usecase/transition_order"
	updateAppointmentStatusUC "github.com/m04kA/SMC-CounselingService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
	"github.com/m04kA/SMC-CounselingService/pkg/metrics"
	"github.com/m04kA/SMC-CounselingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CounselingService/pkg/txmanager"
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

	log.Info("Starting SMC-CounselingService...")
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
	doctorClient := doctorDirectoryClient.NewClient(
		cfg.DoctorService.URL,
		time.Duration(cfg.DoctorService.Timeout)*time.Second,
		log,
	)
	catalogClient := serviceCatalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DoctorService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.DoctorService.URL, cfg.DoctorService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		orderRepository       *orderRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		slotRepository        *slotRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		orderRepository = orderRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		orderRepository = orderRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	consistencySvc := consistencyService.NewService(
		orderRepository,
		appointmentRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)
	ordersSvc := ordersService.NewService(
		orderRepository,
		appointmentRepository,
		slotRepository,
		txMgr,
		log,
	)
	slotsSvc := slotsService.NewService(
		slotRepository,
		doctorClient,
		log,
	)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		appointmentRepository,
		slotRepository,
		doctorClient,
		catalogClient,
		txMgr,
		log,
	)
	transitionOrderUseCase := transitionOrderUC.NewUseCase(
		orderRepository,
		appointmentRepository,
		txMgr,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		orderRepository,
		consistencySvc,
		txMgr,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		consistencySvc,
		txMgr,
		log,
	)
	updateAppointmentStatusUseCase := updateAppointmentStatusUC.NewUseCase(
		appointmentRepository,
		consistencySvc,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	transitionOrder := transitionOrderHandler.NewHandler(transitionOrderUseCase, log)
	deleteOrder := deleteOrderHandler.NewHandler(ordersSvc, log)
	getClientOrders := getClientOrdersHandler.NewHandler(ordersSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(updateAppointmentStatusUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getWeekAppointments := getWeekAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	getDoctorSlots := getDoctorSlotsHandler.NewHandler(slotsSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)

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

	// Все маршруты требуют аутентификации (X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/status", transitionOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{orderId}", deleteOrder.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/clients/me/orders", getClientOrders.Handle).Methods(http.MethodGet)

	// --- Встречи ---
	protected.HandleFunc("/appointments/week", getWeekAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/me/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Слоты расписания ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/doctors/{doctorId}/slots", getDoctorSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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

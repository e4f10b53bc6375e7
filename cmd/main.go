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
	"github.com/redis/go-redis/v9"

	applyPromotionHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/apply_promotion"
	completePaymentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/complete_payment"
	createAppointmentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/create_appointment"
	createPaymentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/create_payment"
	createPromotionHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/create_promotion"
	deleteAppointmentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/get_available_slots"
	getPaymentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/get_payment"
	getUserAppointmentsHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/get_user_appointments"
	manageScheduleHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/manage_schedule"
	redeemPointsHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/redeem_points"
	updateAppointmentHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/tarekyounes123/booking-online-sub001/internal/api/handlers/update_appointment_status"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	"github.com/tarekyounes123/booking-online-sub001/internal/config"
	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	"github.com/tarekyounes123/booking-online-sub001/internal/infra/settings"
	appointmentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	outboxRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/outbox"
	paymentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/payment"
	promotionRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/promotion"
	scheduleRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/schedule"
	serviceRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/service"
	userRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/user"
	calendarClient "github.com/tarekyounes123/booking-online-sub001/internal/integrations/calendar"
	notifierClient "github.com/tarekyounes123/booking-online-sub001/internal/integrations/notifier"
	appointmentsService "github.com/tarekyounes123/booking-online-sub001/internal/service/appointments"
	loyaltyService "github.com/tarekyounes123/booking-online-sub001/internal/service/loyalty"
	paymentsService "github.com/tarekyounes123/booking-online-sub001/internal/service/payments"
	promotionsService "github.com/tarekyounes123/booking-online-sub001/internal/service/promotions"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/reminders"
	scheduleService "github.com/tarekyounes123/booking-online-sub001/internal/service/schedule"
	applyPromotionUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/apply_promotion"
	completePaymentUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/complete_payment"
	createAppointmentUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/get_available_slots"
	redeemPointsUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/redeem_points"
	updateAppointmentUC "github.com/tarekyounes123/booking-online-sub001/internal/usecase/update_appointment"
	"github.com/tarekyounes123/booking-online-sub001/pkg/logger"
	"github.com/tarekyounes123/booking-online-sub001/pkg/metrics"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking service...")

	// Collectors are always registered; the enabled flag gates the endpoint,
	// the HTTP middleware and the pool stats loop.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database.
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Metrics.Enabled {
		go metricsCollector.CollectDBStats(db, 15*time.Second, stopMetricsCh)
	}

	// Redis backs the live runtime settings (loyalty accrual toggle).
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	settingsStore := settings.NewStore(redisClient, cfg.Loyalty.EnabledDefault, log)

	// Repositories.
	appointments := appointmentRepo.NewRepository(db)
	services := serviceRepo.NewRepository(db)
	promotions := promotionRepo.NewRepository(db)
	payments := paymentRepo.NewRepository(db)
	users := userRepo.NewRepository(db)
	schedules := scheduleRepo.NewRepository(db)
	outbox := outboxRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Services.
	scheduleSvc := scheduleService.NewService(schedules, log)
	loyaltyLedger := loyaltyService.NewLedger(users, settingsStore, log)
	appointmentsSvc := appointmentsService.NewService(appointments, outbox, txMgr, log)
	promotionsSvc := promotionsService.NewService(promotions, promotionsService.RealTimeProvider{}, log)
	paymentsSvc := paymentsService.NewService(payments, appointments, log)

	// Use cases.
	createAppointmentUseCase := createAppointmentUC.NewUseCase(appointments, services, scheduleSvc, outbox, txMgr, log)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(appointments, services, scheduleSvc, outbox, txMgr, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(appointments, services, scheduleSvc, cfg.Booking.SlotStepMinutes, log)
	applyPromotionUseCase := applyPromotionUC.NewUseCase(appointments, promotions, outbox, txMgr, log)
	redeemPointsUseCase := redeemPointsUC.NewUseCase(appointments, loyaltyLedger, txMgr, cfg.Loyalty.PointsPerUnit, log)
	completePaymentUseCase := completePaymentUC.NewUseCase(payments, loyaltyLedger, outbox, txMgr, log)

	// Handlers.
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, metricsCollector, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	applyPromotion := applyPromotionHandler.NewHandler(applyPromotionUseCase, metricsCollector, log)
	redeemPoints := redeemPointsHandler.NewHandler(redeemPointsUseCase, metricsCollector, log)
	createPayment := createPaymentHandler.NewHandler(paymentsSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentsSvc, log)
	completePayment := completePaymentHandler.NewHandler(completePaymentUseCase, metricsCollector, log)
	createPromotion := createPromotionHandler.NewHandler(promotionsSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)

	// Router.
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.Metrics.Enabled {
		api.Use(middleware.Metrics(metricsCollector))
	}
	api.Use(middleware.Auth)

	// Appointments.
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Discounts.
	api.HandleFunc("/appointments/{id}/promotion", applyPromotion.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/points", redeemPoints.Handle).Methods(http.MethodPost)
	api.HandleFunc("/promotions", createPromotion.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/promotions", createPromotion.HandleList).Methods(http.MethodGet)

	// Schedule administration.
	api.HandleFunc("/schedule/hours", manageSchedule.HandleSetStoreHour).Methods(http.MethodPut)
	api.HandleFunc("/schedule/exceptions", manageSchedule.HandleAddException).Methods(http.MethodPost)
	api.HandleFunc("/schedule/staff", manageSchedule.HandleSetStaffSchedule).Methods(http.MethodPut)

	// Payments.
	api.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id}", getPayment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}/complete", completePayment.Handle).Methods(http.MethodPost)

	// Outbox dispatcher with its delivery sinks.
	notifier := notifierClient.NewClient(cfg.Integrations.NotifierURL,
		time.Duration(cfg.Integrations.Timeout)*time.Second, log)
	calendar := calendarClient.NewClient(cfg.Integrations.CalendarURL,
		time.Duration(cfg.Integrations.Timeout)*time.Second, log)

	var sinks []events.Sink
	if cfg.Integrations.NotifierURL != "" {
		sinks = append(sinks, notifierClient.NewEventSink(notifier))
	}
	if cfg.Integrations.CalendarURL != "" {
		sinks = append(sinks, calendarClient.NewEventSink(calendar, cfg.Integrations.CalendarPlatforms))
	}

	dispatcher := events.NewDispatcher(outbox, txMgr, events.Config{
		KafkaBrokers:   cfg.Events.KafkaBrokers,
		KafkaTopic:     cfg.Events.KafkaTopic,
		WebhookTargets: cfg.Events.WebhookTargets,
		PollInterval:   time.Duration(cfg.Events.PollIntervalSeconds) * time.Second,
		BatchSize:      cfg.Events.BatchSize,
		WebhookTimeout: time.Duration(cfg.Events.WebhookTimeout) * time.Second,
	}, metricsCollector, log, sinks...)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Run(dispatcherCtx)

	// Appointment reminder worker.
	if cfg.Reminders.Enabled {
		reminderWorker := reminders.NewWorker(appointments, notifier,
			time.Duration(cfg.Reminders.LeadHours)*time.Hour,
			time.Duration(cfg.Reminders.SweepIntervalMinutes)*time.Minute, log)
		go reminderWorker.Run(dispatcherCtx)
	}

	// HTTP server with graceful shutdown.
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopDispatcher()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
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

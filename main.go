// File: brokerbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"brokerbook/config"
	"brokerbook/cron"
	"brokerbook/database"
	"brokerbook/database/repository"
	"brokerbook/handlers"
	"brokerbook/middleware"
	"brokerbook/routes"
	"brokerbook/services/availability"
	"brokerbook/services/booking"
	"brokerbook/services/broker"
	"brokerbook/services/identity"
	"brokerbook/services/notification"
	"brokerbook/services/scheduling"
	"brokerbook/services/tasks"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := utils.InitTracing(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to initialize tracing", zap.Error(err))
	}

	if config.FirebaseEnabled() {
		utils.FirebaseInit()
	}

	// Document store.
	health := map[string]utils.Pinger{}
	if config.UseFirestore() {
		database.InitFirestore()
		health["firestore"] = utils.PingFunc(database.PingFirestore)
	} else {
		database.InitDB()
		health["mongo"] = utils.PingFunc(database.PingMongo)
	}
	repos := repository.NewSet()
	if err := repos.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to ensure indexes", zap.Error(err))
	}

	clock, err := scheduling.NewSystemClock(cfg.Timezone)
	if err != nil {
		logger.Fatal("main: invalid TIMEZONE", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	// Slot locks: redis when configured, otherwise in-process.
	var locker booking.SlotLocker = booking.NewLocalSlotLocker()
	if lockClient := utils.GetLockClient(); lockClient != nil {
		locker = &booking.RedisSlotLocker{Client: lockClient}
		health["redis"] = utils.PingFunc(func(ctx context.Context) error { return lockClient.Ping(ctx).Err() })
	}

	// Identity.
	var verifier identity.Verifier
	if cfg.AuthProvider == "firebase" {
		verifier = &identity.FirebaseVerifier{Auth: utils.GetAuthClient(rootCtx)}
	} else {
		if cfg.JWTSecret == "" {
			logger.Fatal("main: JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
		verifier = &identity.JWTVerifier{Secret: []byte(cfg.JWTSecret)}
	}

	// Push notifications.
	var notifier notification.NotificationService = notification.NopNotificationService{}
	if cfg.NotificationsEnabled {
		fcm, err := notification.NewDefaultNotificationService(utils.GetFCMClient(rootCtx), logger)
		if err != nil {
			logger.Fatal("main: failed to initialize notifications", zap.Error(err))
		}
		notifier = fcm
	}

	// Reminders go through asynq on the queue DB.
	var reminders booking.ReminderScheduler = booking.NopReminders{}
	var worker *cron.ReminderWorker
	if cfg.RedisAddr != "" {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		client := asynq.NewClient(redisOpt)
		defer client.Close()
		inspector := asynq.NewInspector(redisOpt)
		defer inspector.Close()

		reminders = &tasks.AsynqReminders{
			Client:    client,
			Inspector: inspector,
			Lead:      time.Duration(cfg.ReminderLeadMinutes) * time.Minute,
			Location:  clock.Location,
			Now:       clock.Now,
			Logger:    logger,
		}
		worker = cron.NewReminderWorker(redisOpt, repos.Appointments, notifier, logger)
		worker.Start()
	}

	// services.
	slots, err := scheduling.NewDefaultSlotGenerator(repos.Availability, repos.Appointments, clock, logger)
	if err != nil {
		logger.Fatal("main: failed to build slot generator", zap.Error(err))
	}
	slots.DefaultHorizon = cfg.SlotHorizonDays
	slots.MaxHorizon = cfg.SlotMaxHorizonDays

	availabilityService, err := availability.NewDefaultAvailabilityService(repos.Availability, clock, logger)
	if err != nil {
		logger.Fatal("main: failed to build availability service", zap.Error(err))
	}
	bookingService, err := booking.NewDefaultBookingService(repos.Appointments, slots, locker, reminders, notifier, logger)
	if err != nil {
		logger.Fatal("main: failed to build booking service", zap.Error(err))
	}
	brokerService, err := broker.NewDefaultBrokerService(repos.Brokers, slots, cfg.SearchConcurrency, logger)
	if err != nil {
		logger.Fatal("main: failed to build broker service", zap.Error(err))
	}

	handlerBundle := &handlers.HandlerBundle{
		Slots:        slots,
		Availability: availabilityService,
		Booking:      bookingService,
		Brokers:      brokerService,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, verifier)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, health)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           otelhttp.NewHandler(router, "brokerbook"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if config.UseFirestore() {
		_ = database.CloseFirestore()
	} else {
		_ = database.CloseDB(ctx)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("main: tracing shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

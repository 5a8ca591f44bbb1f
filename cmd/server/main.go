package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/teamboard/backend/api/handler"
	"github.com/teamboard/backend/internal/config"
	"github.com/teamboard/backend/internal/infrastructure/buffer"
	"github.com/teamboard/backend/internal/infrastructure/monitor"
	pgInfra "github.com/teamboard/backend/internal/infrastructure/postgres"
	redisInfra "github.com/teamboard/backend/internal/infrastructure/redis"
	"github.com/teamboard/backend/internal/middleware"
	"github.com/teamboard/backend/internal/router"
	"github.com/teamboard/backend/internal/services"
	"github.com/teamboard/backend/internal/services/lifecycle"
	"github.com/teamboard/backend/pkg/httpcontext"
	"github.com/teamboard/backend/pkg/logger"
	"github.com/teamboard/backend/repository/postgres"
	redisRepo "github.com/teamboard/backend/repository/redis"
	authUC "github.com/teamboard/backend/usecase/auth"
	calendarUC "github.com/teamboard/backend/usecase/calendar"
	dailytaskUC "github.com/teamboard/backend/usecase/dailytask"
	mindmapUC "github.com/teamboard/backend/usecase/mindmap"
	profileUC "github.com/teamboard/backend/usecase/profile"
	projectUC "github.com/teamboard/backend/usecase/project"
	taskUC "github.com/teamboard/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	dailyTaskRepo := postgres.NewDailyTaskRepository(pool)
	completionRepo := postgres.NewCompletionRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	mindmapRepo := postgres.NewMindmapRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		completionRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  cfg.Buffer.Retention,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	dailyTaskUseCase := dailytaskUC.New(dailyTaskRepo, completionRepo, bufferBridge, zapLogger)
	projectUseCase := projectUC.New(projectRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, bufferBridge, zapLogger)
	calendarUseCase := calendarUC.New(taskRepo, dailyTaskRepo, completionRepo, zapLogger)
	mindmapUseCase := mindmapUC.New(mindmapRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, dailyTaskUseCase, ctxAdapter, zapLogger),
		DailyTask: apiHandler.NewDailyTaskHandler(dailyTaskUseCase, ctxAdapter, zapLogger),
		Project:   apiHandler.NewProjectHandler(projectUseCase, ctxAdapter, zapLogger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Calendar:  apiHandler.NewCalendarHandler(calendarUseCase, ctxAdapter, zapLogger),
		Mindmap:   apiHandler.NewMindmapHandler(mindmapUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	if cfg.Reminder.Enabled {
		reminders := services.NewReminderScheduler(
			dailyTaskRepo,
			services.NewLogNotifier(zapLogger),
			cfg.Reminder.Schedule,
			zapLogger,
		)
		reminders.Start()
		manager.Register("reminder_scheduler", func(ctx context.Context) error {
			reminders.Stop(ctx)
			return nil
		})
	}

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

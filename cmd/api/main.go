package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/fon-raspored/raspored-api/api/swagger"
	"github.com/fon-raspored/raspored-api/internal/handler"
	"github.com/fon-raspored/raspored-api/internal/repository"
	"github.com/fon-raspored/raspored-api/internal/router"
	"github.com/fon-raspored/raspored-api/internal/service"
	"github.com/fon-raspored/raspored-api/pkg/cache"
	"github.com/fon-raspored/raspored-api/pkg/config"
	"github.com/fon-raspored/raspored-api/pkg/database"
	"github.com/fon-raspored/raspored-api/pkg/holidays"
	"github.com/fon-raspored/raspored-api/pkg/jobs"
	"github.com/fon-raspored/raspored-api/pkg/logger"
)

// @title FON Raspored API
// @version 1.0.0
// @description Student timetable, attendance check-in and holiday management.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && cacheRepo != nil)

	students := repository.NewStudentRepository(db)
	users := repository.NewUserRepository(db)
	terms := repository.NewTermRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	authSvc := service.NewAuthService(service.AuthConfig{Secret: cfg.JWT.Secret, Expiration: cfg.JWT.Expiration})
	profileSvc := service.NewProfileService(service.ProfileServiceParams{
		Students:   students,
		Terms:      terms,
		Attendance: attendanceRepo,
		Holidays:   holidayRepo,
		Users:      users,
		Cache:      cacheSvc,
		Metrics:    metrics,
		Validator:  validate,
		Logger:     logr,
		Config: service.ProfileServiceConfig{
			SemesterStart: cfg.Semester.Start,
			Location:      cfg.Semester.Location,
			CacheTTL:      cfg.Stats.CacheTTL,
		},
	})
	attendanceSvc := service.NewAttendanceService(service.AttendanceServiceParams{
		Students:   students,
		Terms:      terms,
		Attendance: attendanceRepo,
		Holidays:   holidayRepo,
		Stats:      profileSvc,
		Metrics:    metrics,
		Logger:     logr,
		Location:   cfg.Semester.Location,
	})

	var fallback holidays.Source
	if cfg.Holidays.Fallback {
		fallback = holidays.NewStatutoryCalendar(cfg.Semester.Location)
	}
	holidaySvc := service.NewHolidayService(service.HolidayServiceParams{
		Repo:      holidayRepo,
		Primary:   holidays.NewNagerClient(cfg.Holidays.BaseURL, cfg.Holidays.Timeout),
		Fallback:  fallback,
		Country:   cfg.Holidays.Country,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		Location:  cfg.Semester.Location,
	})
	adminSvc := service.NewAdminService(repository.NewStatsRepository(db), repository.NewGroupRepository(db))
	catalogSvc := service.NewCatalogService(repository.NewCabinetRepository(db), repository.NewSubjectRepository(db), cacheSvc)
	reportSvc := service.NewReportService(profileSvc, cfg.Semester.Location, logr)

	queue := jobs.NewQueue("holidays", jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
		RetryDelay: time.Minute,
		Logger:     logr,
	})
	queue.Register(service.HolidaySyncJobType, holidaySvc.SyncJob)
	queue.Start(ctx)
	defer queue.Stop()

	var scheduler *jobs.Scheduler
	if cfg.Holidays.Cron != "" {
		scheduler = jobs.NewScheduler(queue, logr)
		if err := scheduler.Every(cfg.Holidays.Cron, func() jobs.Job {
			return jobs.Job{Type: service.HolidaySyncJobType}
		}); err != nil {
			return err
		}
		scheduler.Start()
	}

	readiness := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	engine := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CookieName:     cfg.JWT.CookieName,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
	}, router.Handlers{
		Auth:       authSvc,
		Metrics:    metrics,
		Ops:        handler.NewMetricsHandler(metrics, readiness, logr),
		Profile:    handler.NewProfileHandler(profileSvc, reportSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Holidays:   handler.NewHolidayHandler(holidaySvc, validate),
		Admin:      handler.NewAdminHandler(adminSvc),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}

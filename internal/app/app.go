package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/controller"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/service"
	"jirepedia_backend/pkg/database"
	"jirepedia_backend/pkg/logger"
	"jirepedia_backend/pkg/monitoring"
	"jirepedia_backend/pkg/security"
	"jirepedia_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	term      *repository.TermRepository
	attempt   *repository.AttemptRepository
	entry     *repository.EntryRepository
	badge     *repository.BadgeRepository
	social    *repository.SocialRepository
	challenge *repository.DailyChallengeRepository
	checkin   *repository.CheckinRepository
	notify    *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	term         *service.TermService
	judgement    *service.JudgementService
	entry        *service.EntryService
	badge        *service.BadgeService
	community    *service.CommunityService
	challenge    *service.DailyChallengeService
	notification *service.NotificationService
	storage      *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	term      *controller.TermController
	judge     *controller.JudgeController
	entry     *controller.EntryController
	badge     *controller.BadgeController
	notify    *controller.NotificationController
	challenge *controller.DailyChallengeController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		term:      repository.NewTermRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		entry:     repository.NewEntryRepository(db),
		badge:     repository.NewBadgeRepository(db),
		social:    repository.NewSocialRepository(db),
		challenge: repository.NewDailyChallengeRepository(db),
		checkin:   repository.NewCheckinRepository(db),
		notify:    repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.notification = service.NewNotificationService(repos.notify)
	s.badge = service.NewBadgeService(repos.badge, repos.user, repos.attempt, repos.social, repos.challenge, s.notification)
	s.user = service.NewUserService(repos.user, repos.attempt, repos.entry, repos.checkin, s.badge)
	s.term = service.NewTermService(repos.term, repos.entry, repos.attempt, rdb)
	s.challenge = service.NewDailyChallengeService(repos.challenge, repos.term, rdb)

	aiJudge := service.NewAIJudgeService(cfg.AI)
	s.judgement = service.NewJudgementService(repos.term, repos.attempt, repos.user, aiJudge, s.badge, s.challenge, db, cfg.AI)

	s.entry = service.NewEntryService(repos.entry, repos.attempt, repos.term, s.notification, db)
	s.community = service.NewCommunityService(repos.social, repos.entry, s.notification, s.badge)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		user:      controller.NewUserController(s.user, s.storage),
		term:      controller.NewTermController(s.term),
		judge:     controller.NewJudgeController(s.judgement),
		entry:     controller.NewEntryController(s.entry, s.community),
		badge:     controller.NewBadgeController(s.badge),
		notify:    controller.NewNotificationController(s.notification),
		challenge: controller.NewDailyChallengeController(s.challenge),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("jirepedia", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}

package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/controller"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/service"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/logger"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/monitoring"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/security"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/tracing"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
	stop     chan struct{}
}

type repositories struct {
	user       *repository.UserRepository
	assessment *repository.AssessmentRepository
}

type services struct {
	auth       *service.AuthService
	assessment *service.AssessmentService
	dashboard  *service.DashboardService
	storage    *service.StorageService
	resume     *service.ResumeService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	dashboard  *controller.DashboardController
	resume     *controller.ResumeController
	health     *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	repos := &repositories{
		user:       repository.NewUserRepository(),
		assessment: repository.NewAssessmentRepository(),
	}
	if err := repos.user.Seed(cfg.Seed.AdminPassword, cfg.Seed.EngineerPassword); err != nil {
		return nil, err
	}
	return repos, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user)
	s.dashboard = service.NewDashboardService(repos.user, repos.assessment)
	s.resume = service.NewResumeService(service.NewGmailMailbox(&cfg.Mailbox), s.storage, &cfg.Mailbox)
	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		assessment: controller.NewAssessmentController(s.assessment),
		dashboard:  controller.NewDashboardController(s.dashboard, repos.user),
		resume:     controller.NewResumeController(s.resume),
		health:     controller.NewHealthController(),
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

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if cfg.Mailbox.Enabled {
		go s.resume.Poll(a.stop)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config: cfg,
		stop:   make(chan struct{}),
	}

	repos, err := app.initRepositories(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to seed account directory", zap.Error(err))
	}
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pd-assessment-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(services, cfg)

	return app
}

// ApplyConfig propagates the runtime-safe subset of a reloaded config.
// Server port, mode, JWT settings and the seeded roster are fixed for the
// process lifetime.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.resume.UpdateMailbox(&cfg.Mailbox)
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	close(a.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/skillforge/lms-platform/docs"
	"github.com/skillforge/lms-platform/internal/api/handler"
	"github.com/skillforge/lms-platform/internal/api/middleware"
	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
	"github.com/skillforge/lms-platform/internal/core/service"
	lmsmongo "github.com/skillforge/lms-platform/internal/infrastructure/db/mongo"
	lmsredis "github.com/skillforge/lms-platform/internal/infrastructure/db/redis"
	"github.com/skillforge/lms-platform/internal/infrastructure/media"
	"github.com/skillforge/lms-platform/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, gateway ports.PaymentGateway, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lms"))

	// --- Repositories ---
	userRepo := lmsmongo.NewUserRepository(db)
	deviceRepo := lmsmongo.NewDeviceRepository(db)
	courseRepo := lmsmongo.NewCourseRepository(db)
	videoRepo := lmsmongo.NewVideoRepository(db)
	courseCache := lmsredis.NewCourseCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deviceRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	deviceService := service.NewDeviceService(deviceRepo, log)
	resolver := media.NewResolver(log)
	courseService := service.NewCourseService(courseRepo, videoRepo, resolver, courseCache, log)
	progressService := service.NewProgressService(userRepo, courseRepo, log)
	subscriptionService := service.NewSubscriptionService(userRepo, gateway, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	progressHandler := handler.NewProgressHandler(progressService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)

	authRequired := middleware.Auth(authService)
	authOptional := middleware.OptionalAuth(authService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/profile", authHandler.Profile, authRequired)

	// --- Course routes ---
	courses := e.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/search", courseHandler.Search)
	courses.GET("/enrolled", progressHandler.Enrolled, authRequired)
	courses.GET("/:id", courseHandler.Get)
	courses.POST("", courseHandler.Create, authRequired, adminOnly)
	courses.PUT("/:id", courseHandler.Update, authRequired, adminOnly)
	courses.DELETE("/:id", courseHandler.Delete, authRequired, adminOnly)
	courses.POST("/:id/publish", courseHandler.Publish, authRequired, adminOnly)

	// --- Lesson + progress routes ---
	courses.GET("/:courseId/lesson/:lessonId", courseHandler.GetLesson, authOptional)
	courses.POST("/:courseId/lesson/:lessonId/complete", progressHandler.Complete, authRequired)
	courses.POST("/:courseId/enroll", progressHandler.Enroll, authRequired)
	courses.GET("/:courseId/progress", progressHandler.GetProgress, authRequired)

	// --- Device routes ---
	devices := e.Group("/devices", authRequired)
	devices.GET("", deviceHandler.List)
	devices.DELETE("/:deviceId", deviceHandler.Deactivate)

	// --- Subscription routes ---
	subscription := e.Group("/subscription")
	subscription.GET("/plans", subscriptionHandler.Plans)
	subscription.POST("/order", subscriptionHandler.CreateOrder, authRequired)
	subscription.POST("/verify", subscriptionHandler.VerifyPayment, authRequired)
	subscription.GET("/status", subscriptionHandler.Status, authRequired)

	// --- Ops surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

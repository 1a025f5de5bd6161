package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/appsembler/figures-backend/internal/handlers"
  "github.com/appsembler/figures-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler               *handlers.AuthHandler
  AuthMiddleware            *middleware.AuthMiddleware
  HomeHandler               *handlers.HomeHandler
  CoursesIndexHandler       *handlers.CoursesIndexHandler
  UserIndexHandler          *handlers.UserIndexHandler
  CourseEnrollmentHandler   *handlers.CourseEnrollmentHandler
  CourseDailyMetricsHandler *handlers.CourseDailyMetricsHandler
  SiteDailyMetricsHandler   *handlers.SiteDailyMetricsHandler
  GeneralMetricsHandler     *handlers.GeneralMetricsHandler
  PipelineHandler           *handlers.PipelineHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("figures-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:8080",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/", cfg.HomeHandler.Home)
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/api/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Index views
  protected.GET("/courses-index/", cfg.CoursesIndexHandler.List)
  protected.GET("/user-index/", cfg.UserIndexHandler.List)
  // Enrollments
  protected.GET("/course-enrollments/", cfg.CourseEnrollmentHandler.List)
  protected.POST("/course-enrollments/", cfg.CourseEnrollmentHandler.Create)
  protected.GET("/course-enrollments/:id", cfg.CourseEnrollmentHandler.Get)
  protected.PUT("/course-enrollments/:id", cfg.CourseEnrollmentHandler.Update)
  protected.DELETE("/course-enrollments/:id", cfg.CourseEnrollmentHandler.Delete)
  // Course daily metrics
  protected.GET("/course-daily-metrics/", cfg.CourseDailyMetricsHandler.List)
  protected.POST("/course-daily-metrics/", cfg.CourseDailyMetricsHandler.Create)
  protected.GET("/course-daily-metrics/:id", cfg.CourseDailyMetricsHandler.Get)
  protected.PUT("/course-daily-metrics/:id", cfg.CourseDailyMetricsHandler.Update)
  protected.DELETE("/course-daily-metrics/:id", cfg.CourseDailyMetricsHandler.Delete)
  // Site daily metrics
  protected.GET("/site-daily-metrics/", cfg.SiteDailyMetricsHandler.List)
  protected.POST("/site-daily-metrics/", cfg.SiteDailyMetricsHandler.Create)
  protected.GET("/site-daily-metrics/:id", cfg.SiteDailyMetricsHandler.Get)
  protected.PUT("/site-daily-metrics/:id", cfg.SiteDailyMetricsHandler.Update)
  protected.DELETE("/site-daily-metrics/:id", cfg.SiteDailyMetricsHandler.Delete)
  // Rollups and pipeline control
  protected.GET("/general-site-metrics/", cfg.GeneralMetricsHandler.Get)
  protected.POST("/pipeline/run", cfg.PipelineHandler.Run)

  return router
}

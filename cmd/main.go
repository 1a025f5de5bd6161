package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/utils"
  "github.com/appsembler/figures-backend/internal/db"
  "github.com/appsembler/figures-backend/internal/observability"
  "github.com/appsembler/figures-backend/internal/repos"
  "github.com/appsembler/figures-backend/internal/services"
  "github.com/appsembler/figures-backend/internal/handlers"
  "github.com/appsembler/figures-backend/internal/middleware"
  "github.com/appsembler/figures-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "figures-backend",
    Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
    Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer otelShutdown(context.Background())
  }

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  siteDomain := utils.GetEnv("SITE_DOMAIN", "localhost", log)
  siteName := utils.GetEnv("SITE_NAME", "Figures", log)
  apiBaseURL := utils.GetEnv("API_BASE_URL", "/api", log)
  pipelineConfigPath := utils.GetEnv("PIPELINE_CONFIG_PATH", "configs/pipeline.yaml", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  siteRepo := repos.NewSiteRepo(thePG, log)
  userRepo := repos.NewUserRepo(thePG, log)
  courseRepo := repos.NewCourseOverviewRepo(thePG, log)
  enrollmentRepo := repos.NewCourseEnrollmentRepo(thePG, log)
  moduleRepo := repos.NewStudentModuleRepo(thePG, log)
  certificateRepo := repos.NewGeneratedCertificateRepo(thePG, log)
  courseMetricsRepo := repos.NewCourseDailyMetricsRepo(thePG, log)
  siteMetricsRepo := repos.NewSiteDailyMetricsRepo(thePG, log)
  gradeCacheRepo := repos.NewLearnerCourseGradeMetricsRepo(thePG, log)
  errorRepo := repos.NewPipelineErrorRepo(thePG, log)

  // Default site
  if _, err := siteRepo.EnsureDefault(context.Background(), nil, siteDomain, siteName); err != nil {
    log.Warn("Could not ensure default site", "domain", siteDomain, "error", err)
  }

  // Services
  log.Info("Setting up Services from main...")
  gradesService := services.NewGradesService(thePG, log, gradeCacheRepo, moduleRepo, certificateRepo)
  courseMetricsService := services.NewCourseMetricsService(
    thePG,
    log,
    enrollmentRepo,
    moduleRepo,
    certificateRepo,
    courseMetricsRepo,
    errorRepo,
    gradesService,
  )
  siteMetricsService := services.NewSiteMetricsService(
    thePG,
    log,
    userRepo,
    courseRepo,
    enrollmentRepo,
    moduleRepo,
    siteMetricsRepo,
  )
  generalMetricsService := services.NewGeneralMetricsService(
    thePG,
    log,
    userRepo,
    courseRepo,
    enrollmentRepo,
    moduleRepo,
    certificateRepo,
  )
  pipelineConfig := services.LoadPipelineConfig(pipelineConfigPath, log)
  pipelineService := services.NewPipelineService(
    thePG,
    log,
    pipelineConfig,
    courseRepo,
    siteRepo,
    errorRepo,
    courseMetricsService,
    siteMetricsService,
  )
  pipelineService.StartWorker(context.Background())
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(log, authService)
  homeHandler := handlers.NewHomeHandler(log, apiBaseURL)
  coursesIndexHandler := handlers.NewCoursesIndexHandler(log, courseRepo)
  userIndexHandler := handlers.NewUserIndexHandler(log, userRepo)
  enrollmentHandler := handlers.NewCourseEnrollmentHandler(log, enrollmentRepo)
  courseMetricsHandler := handlers.NewCourseDailyMetricsHandler(log, courseMetricsRepo)
  siteMetricsHandler := handlers.NewSiteDailyMetricsHandler(log, siteMetricsRepo)
  generalMetricsHandler := handlers.NewGeneralMetricsHandler(log, generalMetricsService)
  pipelineHandler := handlers.NewPipelineHandler(log, pipelineService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:               authHandler,
    AuthMiddleware:            authMiddleware,
    HomeHandler:               homeHandler,
    CoursesIndexHandler:       coursesIndexHandler,
    UserIndexHandler:          userIndexHandler,
    CourseEnrollmentHandler:   enrollmentHandler,
    CourseDailyMetricsHandler: courseMetricsHandler,
    SiteDailyMetricsHandler:   siteMetricsHandler,
    GeneralMetricsHandler:     generalMetricsHandler,
    PipelineHandler:           pipelineHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}

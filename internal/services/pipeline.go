package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gopkg.in/yaml.v3"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
	"github.com/appsembler/figures-backend/internal/utils"
)

// PipelineConfig controls the daily metrics worker.
type PipelineConfig struct {
	// CheckIntervalSeconds is how often the worker wakes to see whether
	// today's run is due.
	CheckIntervalSeconds int `yaml:"check_interval_seconds"`
	// RunHourUTC is the earliest UTC hour at which the daily run starts.
	RunHourUTC int `yaml:"run_hour_utc"`
}

func defaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		CheckIntervalSeconds: 60,
		RunHourUTC:           1,
	}
}

// LoadPipelineConfig reads the worker configuration from a YAML file,
// falling back to defaults when the file is absent or a field is unset.
func LoadPipelineConfig(path string, log *logger.Logger) PipelineConfig {
	cfg := defaultPipelineConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Debug("Pipeline config file not read, using defaults", "path", path, "error", err)
		}
		return cfg
	}
	var parsed PipelineConfig
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		if log != nil {
			log.Warn("Pipeline config file unparseable, using defaults", "path", path, "error", err)
		}
		return cfg
	}
	if parsed.CheckIntervalSeconds > 0 {
		cfg.CheckIntervalSeconds = parsed.CheckIntervalSeconds
	}
	if parsed.RunHourUTC >= 0 && parsed.RunHourUTC < 24 {
		cfg.RunHourUTC = parsed.RunHourUTC
	}
	return cfg
}

// PipelineService runs the daily ETL: course metrics for every course, then
// site metrics for every site, for a reference date.
type PipelineService interface {
	StartWorker(ctx context.Context)
	RunForDate(ctx context.Context, dateFor time.Time) error
}

type pipelineService struct {
	db            *gorm.DB
	log           *logger.Logger
	cfg           PipelineConfig
	courseRepo    repos.CourseOverviewRepo
	siteRepo      repos.SiteRepo
	errorRepo     repos.PipelineErrorRepo
	courseMetrics CourseMetricsService
	siteMetrics   SiteMetricsService

	mu         sync.Mutex
	lastRunDay time.Time
}

func NewPipelineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg PipelineConfig,
	courseRepo repos.CourseOverviewRepo,
	siteRepo repos.SiteRepo,
	errorRepo repos.PipelineErrorRepo,
	courseMetrics CourseMetricsService,
	siteMetrics SiteMetricsService,
) PipelineService {
	return &pipelineService{
		db:            db,
		log:           baseLog.With("service", "PipelineService"),
		cfg:           cfg,
		courseRepo:    courseRepo,
		siteRepo:      siteRepo,
		errorRepo:     errorRepo,
		courseMetrics: courseMetrics,
		siteMetrics:   siteMetrics,
	}
}

// StartWorker runs the daily pipeline in a goroutine. Each run covers
// yesterday UTC; at most one run per process per day.
func (ps *pipelineService) StartWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Duration(ps.cfg.CheckIntervalSeconds) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !ps.runDue() {
					continue
				}
				dateFor := utils.YesterdayUTC()
				if err := ps.RunForDate(ctx, dateFor); err != nil {
					ps.log.Error("Daily pipeline run failed", "error", err, "date_for", dateFor.Format("2006-01-02"))
				}
			}
		}
	}()
}

func (ps *pipelineService) runDue() bool {
	now := time.Now().UTC()
	if now.Hour() < ps.cfg.RunHourUTC {
		return false
	}
	today := utils.DayOf(now)

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.lastRunDay.Equal(today) {
		return false
	}
	ps.lastRunDay = today
	return true
}

// RunForDate loads course metrics for every known course, then site metrics
// for every site. A failing course is recorded to the pipeline error log
// and does not stop the run.
func (ps *pipelineService) RunForDate(ctx context.Context, dateFor time.Time) error {
	if dateFor.IsZero() {
		dateFor = utils.YesterdayUTC()
	}
	dateFor = utils.DayOf(dateFor)
	ps.log.Info("Pipeline run starting", "date_for", dateFor.Format("2006-01-02"))

	sites, err := ps.siteRepo.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("fetch sites: %w", err)
	}
	var defaultSiteID *uuid.UUID
	if len(sites) > 0 {
		defaultSiteID = &sites[0].ID
	}

	courseIDs, err := ps.courseRepo.GetAllIDs(ctx, nil)
	if err != nil {
		return fmt.Errorf("fetch course ids: %w", err)
	}

	var failed int
	for _, courseID := range courseIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, _, err := ps.courseMetrics.Load(ctx, courseID, dateFor, defaultSiteID); err != nil {
			failed++
			ps.log.Error("Course metrics load failed", "error", err, "course_id", courseID)
			ps.recordFailure(ctx, types.PipelineErrorCourse, courseID, nil, err)
		}
	}

	for _, site := range sites {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, _, err := ps.siteMetrics.Load(ctx, site, dateFor); err != nil {
			failed++
			ps.log.Error("Site metrics load failed", "error", err, "site", site.Domain)
			siteID := site.ID
			ps.recordFailure(ctx, types.PipelineErrorSite, "", &siteID, err)
		}
	}

	ps.log.Info("Pipeline run finished",
		"date_for", dateFor.Format("2006-01-02"),
		"courses", len(courseIDs),
		"sites", len(sites),
		"failed", failed)
	return nil
}

func (ps *pipelineService) recordFailure(ctx context.Context, errorType, courseID string, siteID *uuid.UUID, cause error) {
	payload, err := json.Marshal(map[string]string{"error": cause.Error()})
	if err != nil {
		return
	}
	row := &types.PipelineError{
		ErrorType: errorType,
		ErrorData: datatypes.JSON(payload),
		CourseID:  courseID,
		SiteID:    siteID,
	}
	if _, err := ps.errorRepo.Create(ctx, nil, row); err != nil {
		ps.log.Warn("Failed to record pipeline failure", "error", err)
	}
}

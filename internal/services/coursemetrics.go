package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
	"github.com/appsembler/figures-backend/internal/utils"
)

// CourseDailyMetricsData is the flat result of one extractor pass for one
// course and day.
type CourseDailyMetricsData struct {
	DateFor               time.Time `json:"date_for"`
	CourseID              string    `json:"course_id"`
	EnrollmentCount       int       `json:"enrollment_count"`
	ActiveLearnersToday   int       `json:"active_learners_today"`
	AverageProgress       float64   `json:"average_progress"`
	AverageDaysToComplete float64   `json:"average_days_to_complete"`
	NumLearnersCompleted  int       `json:"num_learners_completed"`
}

// MetricsWarning is a non-fatal data problem found during extraction. The
// extractor collects warnings and returns them alongside the data instead
// of dropping them; the loader persists them as pipeline errors.
type MetricsWarning struct {
	Message  string    `json:"message"`
	CourseID string    `json:"course_id"`
	UserID   uuid.UUID `json:"user_id,omitempty"`
}

type CourseMetricsService interface {
	Extract(ctx context.Context, courseID string, dateFor time.Time) (*CourseDailyMetricsData, []MetricsWarning, error)
	Load(ctx context.Context, courseID string, dateFor time.Time, siteID *uuid.UUID) (*types.CourseDailyMetrics, bool, error)
}

type courseMetricsService struct {
	db              *gorm.DB
	log             *logger.Logger
	enrollmentRepo  repos.CourseEnrollmentRepo
	moduleRepo      repos.StudentModuleRepo
	certificateRepo repos.GeneratedCertificateRepo
	metricsRepo     repos.CourseDailyMetricsRepo
	errorRepo       repos.PipelineErrorRepo
	grades          GradesService
}

func NewCourseMetricsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	enrollmentRepo repos.CourseEnrollmentRepo,
	moduleRepo repos.StudentModuleRepo,
	certificateRepo repos.GeneratedCertificateRepo,
	metricsRepo repos.CourseDailyMetricsRepo,
	errorRepo repos.PipelineErrorRepo,
	grades GradesService,
) CourseMetricsService {
	return &courseMetricsService{
		db:              db,
		log:             baseLog.With("service", "CourseMetricsService"),
		enrollmentRepo:  enrollmentRepo,
		moduleRepo:      moduleRepo,
		certificateRepo: certificateRepo,
		metricsRepo:     metricsRepo,
		errorRepo:       errorRepo,
		grades:          grades,
	}
}

// Extract walks enrollment, courseware-activity, and certificate records
// for a course and day and produces the daily summary figures. A zero
// dateFor defaults to yesterday UTC. Warnings are collected, never raised.
func (cms *courseMetricsService) Extract(ctx context.Context, courseID string, dateFor time.Time) (*CourseDailyMetricsData, []MetricsWarning, error) {
	if courseID == "" {
		return nil, nil, fmt.Errorf("course id is required")
	}
	if dateFor.IsZero() {
		dateFor = utils.YesterdayUTC()
	}
	dateFor = utils.DayOf(dateFor)

	enrollments, err := cms.enrollmentRepo.GetForCourseAsOf(ctx, nil, courseID, dateFor)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch enrollments: %w", err)
	}

	activeModules, err := cms.moduleRepo.GetForCourseOnDay(ctx, nil, courseID, dateFor)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch student modules: %w", err)
	}

	certificates, err := cms.certificateRepo.GetForCourseThrough(ctx, nil, courseID, dateFor)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch certificates: %w", err)
	}

	averageProgress, err := cms.averageProgress(ctx, courseID, dateFor, enrollments)
	if err != nil {
		return nil, nil, err
	}

	days, warnings, err := cms.daysToComplete(ctx, courseID, certificates)
	if err != nil {
		return nil, nil, err
	}

	data := &CourseDailyMetricsData{
		DateFor:               dateFor,
		CourseID:              courseID,
		EnrollmentCount:       len(enrollments),
		ActiveLearnersToday:   len(activeModules),
		AverageProgress:       averageProgress,
		AverageDaysToComplete: averageInts(days),
		NumLearnersCompleted:  len(certificates),
	}
	return data, warnings, nil
}

// Load ensures exactly one persisted metrics row exists for (course,
// date_for) with freshly computed values and reports whether it was newly
// created. Extractor warnings are written to the pipeline error log before
// the upsert. Last write wins on concurrent runs for the same key.
func (cms *courseMetricsService) Load(ctx context.Context, courseID string, dateFor time.Time, siteID *uuid.UUID) (*types.CourseDailyMetrics, bool, error) {
	if dateFor.IsZero() {
		dateFor = utils.YesterdayUTC()
	}

	data, warnings, err := cms.Extract(ctx, courseID, dateFor)
	if err != nil {
		return nil, false, err
	}

	for _, warning := range warnings {
		cms.recordWarning(ctx, warning, siteID)
	}

	averageProgress := roundTo(data.AverageProgress, 2)
	averageDays := int(math.Round(data.AverageDaysToComplete))
	row := &types.CourseDailyMetrics{
		SiteID:                siteID,
		DateFor:               data.DateFor,
		CourseID:              data.CourseID,
		EnrollmentCount:       data.EnrollmentCount,
		ActiveLearnersToday:   data.ActiveLearnersToday,
		AverageProgress:       &averageProgress,
		AverageDaysToComplete: &averageDays,
		NumLearnersCompleted:  data.NumLearnersCompleted,
	}

	saved, created, err := cms.metricsRepo.Upsert(ctx, nil, row)
	if err != nil {
		return nil, false, fmt.Errorf("upsert course daily metrics: %w", err)
	}
	cms.log.Info("Course daily metrics loaded",
		"course_id", courseID,
		"date_for", data.DateFor.Format("2006-01-02"),
		"created", created,
		"warnings", len(warnings))
	return saved, created, nil
}

// averageProgress averages per-learner progress fractions across all
// enrollments, 0.0 when the course has none.
func (cms *courseMetricsService) averageProgress(ctx context.Context, courseID string, dateFor time.Time, enrollments []*types.CourseEnrollment) (float64, error) {
	fractions := make([]float64, 0, len(enrollments))
	for _, enrollment := range enrollments {
		progress, err := cms.grades.CourseProgress(ctx, enrollment.UserID, courseID, dateFor)
		if err != nil {
			return 0, fmt.Errorf("course progress for user %s: %w", enrollment.UserID, err)
		}
		fractions = append(fractions, progress.ProgressPercent())
	}
	return averageFloats(fractions), nil
}

// daysToComplete computes, per certificate, the calendar-day difference
// between issue date and the learner's enrollment creation. A learner with
// multiple enrollment rows for the course yields an ambiguous figure: the
// earliest enrollment is used and a warning recorded. A certificate with no
// matching enrollment is skipped with a warning.
func (cms *courseMetricsService) daysToComplete(ctx context.Context, courseID string, certificates []*types.GeneratedCertificate) ([]int, []MetricsWarning, error) {
	var days []int
	var warnings []MetricsWarning
	for _, cert := range certificates {
		enrollments, err := cms.enrollmentRepo.GetByUserAndCourse(ctx, nil, cert.UserID, courseID)
		if err != nil {
			return nil, nil, fmt.Errorf("enrollments for certificate %s: %w", cert.ID, err)
		}
		if len(enrollments) == 0 {
			warnings = append(warnings, MetricsWarning{
				Message:  "Certificate without enrollment record",
				CourseID: courseID,
				UserID:   cert.UserID,
			})
			continue
		}
		if len(enrollments) > 1 {
			warnings = append(warnings, MetricsWarning{
				Message:  "Multiple enrollment records",
				CourseID: courseID,
				UserID:   cert.UserID,
			})
		}
		days = append(days, utils.DaysBetween(enrollments[0].Created, cert.CreatedDate))
	}
	return days, warnings, nil
}

func (cms *courseMetricsService) recordWarning(ctx context.Context, warning MetricsWarning, siteID *uuid.UUID) {
	payload, err := json.Marshal(warning)
	if err != nil {
		cms.log.Warn("Failed to marshal metrics warning", "error", err)
		return
	}
	userID := warning.UserID
	row := &types.PipelineError{
		ErrorType: types.PipelineErrorGrades,
		ErrorData: datatypes.JSON(payload),
		CourseID:  warning.CourseID,
		SiteID:    siteID,
	}
	if userID != uuid.Nil {
		row.UserID = &userID
	}
	if _, err := cms.errorRepo.Create(ctx, nil, row); err != nil {
		cms.log.Warn("Failed to record pipeline warning", "error", err, "course_id", warning.CourseID)
	}
}

func averageFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
	"github.com/appsembler/figures-backend/internal/utils"
)

// SiteDailyMetricsData is the flat result of one site-level extractor pass.
type SiteDailyMetricsData struct {
	DateFor                   time.Time `json:"date_for"`
	CumulativeActiveUserCount int       `json:"cumulative_active_user_count"`
	TodaysActiveUserCount     int       `json:"todays_active_user_count"`
	TotalUserCount            int       `json:"total_user_count"`
	CourseCount               int       `json:"course_count"`
	TotalEnrollmentCount      int       `json:"total_enrollment_count"`
}

type SiteMetricsService interface {
	Extract(ctx context.Context, dateFor time.Time) (*SiteDailyMetricsData, error)
	Load(ctx context.Context, site *types.Site, dateFor time.Time) (*types.SiteDailyMetrics, bool, error)
}

type siteMetricsService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseOverviewRepo
	enrollmentRepo repos.CourseEnrollmentRepo
	moduleRepo     repos.StudentModuleRepo
	metricsRepo    repos.SiteDailyMetricsRepo
}

func NewSiteMetricsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseOverviewRepo,
	enrollmentRepo repos.CourseEnrollmentRepo,
	moduleRepo repos.StudentModuleRepo,
	metricsRepo repos.SiteDailyMetricsRepo,
) SiteMetricsService {
	return &siteMetricsService{
		db:             db,
		log:            baseLog.With("service", "SiteMetricsService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		moduleRepo:     moduleRepo,
		metricsRepo:    metricsRepo,
	}
}

// Extract computes site-wide figures for one day: registered users and
// enrollments as of end of day, course count, and distinct learners with
// courseware activity that day (daily) and through that day (cumulative).
func (sms *siteMetricsService) Extract(ctx context.Context, dateFor time.Time) (*SiteDailyMetricsData, error) {
	if dateFor.IsZero() {
		dateFor = utils.YesterdayUTC()
	}
	dateFor = utils.DayOf(dateFor)
	cutoff := utils.NextDay(dateFor)

	totalUsers, err := sms.userRepo.CountJoinedBefore(ctx, nil, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	courseCount, err := sms.courseRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	totalEnrollments, err := sms.enrollmentRepo.CountCreatedBefore(ctx, nil, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	activeToday, err := sms.moduleRepo.CountDistinctUsersOnDay(ctx, nil, dateFor)
	if err != nil {
		return nil, fmt.Errorf("count active users today: %w", err)
	}
	activeCumulative, err := sms.moduleRepo.CountDistinctUsersThrough(ctx, nil, dateFor)
	if err != nil {
		return nil, fmt.Errorf("count active users cumulative: %w", err)
	}

	return &SiteDailyMetricsData{
		DateFor:                   dateFor,
		CumulativeActiveUserCount: int(activeCumulative),
		TodaysActiveUserCount:     int(activeToday),
		TotalUserCount:            int(totalUsers),
		CourseCount:               int(courseCount),
		TotalEnrollmentCount:      int(totalEnrollments),
	}, nil
}

// Load upserts the site metrics row for (site, date_for) and reports
// whether it was newly created.
func (sms *siteMetricsService) Load(ctx context.Context, site *types.Site, dateFor time.Time) (*types.SiteDailyMetrics, bool, error) {
	if site == nil {
		return nil, false, fmt.Errorf("site is required")
	}

	data, err := sms.Extract(ctx, dateFor)
	if err != nil {
		return nil, false, err
	}

	cumulative := data.CumulativeActiveUserCount
	today := data.TodaysActiveUserCount
	row := &types.SiteDailyMetrics{
		SiteID:                    site.ID,
		DateFor:                   data.DateFor,
		CumulativeActiveUserCount: &cumulative,
		TodaysActiveUserCount:     &today,
		TotalUserCount:            data.TotalUserCount,
		CourseCount:               data.CourseCount,
		TotalEnrollmentCount:      data.TotalEnrollmentCount,
	}

	saved, created, err := sms.metricsRepo.Upsert(ctx, nil, row)
	if err != nil {
		return nil, false, fmt.Errorf("upsert site daily metrics: %w", err)
	}
	sms.log.Info("Site daily metrics loaded",
		"site", site.Domain,
		"date_for", data.DateFor.Format("2006-01-02"),
		"created", created)
	return saved, created, nil
}

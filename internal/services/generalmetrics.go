package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/utils"
)

// GeneralSiteMetrics is the site-wide summary the SPA dashboard shows on
// its landing view.
type GeneralSiteMetrics struct {
	MonthlyActiveUsers     int `json:"monthly_active_users"`
	TotalSiteUsers         int `json:"total_site_users"`
	TotalSiteCourses       int `json:"total_site_courses"`
	TotalCourseEnrollments int `json:"total_course_enrollments"`
	TotalCourseCompletions int `json:"total_course_completions"`
}

type GeneralMetricsService interface {
	Get(ctx context.Context) (*GeneralSiteMetrics, error)
}

type generalMetricsService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	courseRepo      repos.CourseOverviewRepo
	enrollmentRepo  repos.CourseEnrollmentRepo
	moduleRepo      repos.StudentModuleRepo
	certificateRepo repos.GeneratedCertificateRepo
	rdb             *redis.Client
	cacheTTL        time.Duration
}

const generalMetricsCacheKey = "figures:general_site_metrics"

// NewGeneralMetricsService builds the dashboard summary service. Redis is
// optional: with no REDIS_ADDR configured every request recomputes from
// the database.
func NewGeneralMetricsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseOverviewRepo,
	enrollmentRepo repos.CourseEnrollmentRepo,
	moduleRepo repos.StudentModuleRepo,
	certificateRepo repos.GeneratedCertificateRepo,
) GeneralMetricsService {
	serviceLog := baseLog.With("service", "GeneralMetricsService")

	var rdb *redis.Client
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", baseLog))
	if addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			serviceLog.Warn("Redis ping failed, running without cache", "error", err)
			rdb = nil
		}
	}

	ttl := time.Duration(utils.GetEnvAsInt("GENERAL_METRICS_CACHE_TTL", 300, baseLog)) * time.Second

	return &generalMetricsService{
		db:              db,
		log:             serviceLog,
		userRepo:        userRepo,
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		moduleRepo:      moduleRepo,
		certificateRepo: certificateRepo,
		rdb:             rdb,
		cacheTTL:        ttl,
	}
}

func (gms *generalMetricsService) Get(ctx context.Context) (*GeneralSiteMetrics, error) {
	if gms.rdb != nil {
		raw, err := gms.rdb.Get(ctx, generalMetricsCacheKey).Result()
		if err == nil {
			cached, decodeErr := decodeCachedMetrics(raw)
			if decodeErr == nil {
				return cached, nil
			}
			gms.log.Warn("Discarding unreadable cached metrics", "error", decodeErr)
		} else if err != redis.Nil {
			gms.log.Warn("Redis read failed, computing from database", "error", err)
		}
	}

	metrics, err := gms.compute(ctx)
	if err != nil {
		return nil, err
	}

	if gms.rdb != nil {
		if raw, err := json.Marshal(metrics); err == nil {
			if err := gms.rdb.Set(ctx, generalMetricsCacheKey, raw, gms.cacheTTL).Err(); err != nil {
				gms.log.Warn("Redis write failed", "error", err)
			}
		}
	}
	return metrics, nil
}

func decodeCachedMetrics(raw string) (*GeneralSiteMetrics, error) {
	var cached GeneralSiteMetrics
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, fmt.Errorf("decode cached metrics: %w", err)
	}
	return &cached, nil
}

func (gms *generalMetricsService) compute(ctx context.Context) (*GeneralSiteMetrics, error) {
	now := time.Now().UTC()
	monthAgo := now.AddDate(0, 0, -30)

	monthlyActive, err := gms.moduleRepo.CountDistinctUsersBetween(ctx, nil, monthAgo, now)
	if err != nil {
		return nil, fmt.Errorf("count monthly active users: %w", err)
	}
	totalUsers, err := gms.userRepo.CountJoinedBefore(ctx, nil, utils.NextDay(now))
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalCourses, err := gms.courseRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	totalEnrollments, err := gms.enrollmentRepo.CountCreatedBefore(ctx, nil, utils.NextDay(now))
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	totalCompletions, err := gms.certificateRepo.CountThrough(ctx, nil, now)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	return &GeneralSiteMetrics{
		MonthlyActiveUsers:     int(monthlyActive),
		TotalSiteUsers:         int(totalUsers),
		TotalSiteCourses:       int(totalCourses),
		TotalCourseEnrollments: int(totalEnrollments),
		TotalCourseCompletions: int(totalCompletions),
	}, nil
}

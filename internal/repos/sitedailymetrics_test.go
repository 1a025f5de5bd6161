package repos

import (
	"context"
	"testing"
	"time"

	"github.com/appsembler/figures-backend/internal/repos/testutil"
	"github.com/appsembler/figures-backend/internal/types"
)

func TestSiteDailyMetricsRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSiteDailyMetricsRepo(db, testutil.Logger(t))

	site := &types.Site{Domain: "upsert.example.com", Name: "Upsert Test"}
	if err := tx.WithContext(ctx).Create(site).Error; err != nil {
		t.Fatalf("seed site: %v", err)
	}
	dateFor := time.Date(2018, 2, 2, 0, 0, 0, 0, time.UTC)

	first := &types.SiteDailyMetrics{
		SiteID:         site.ID,
		DateFor:        dateFor,
		TotalUserCount: 40,
		CourseCount:    2,
	}
	saved, created, err := repo.Upsert(ctx, tx, first)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !created {
		t.Fatalf("first Upsert reported created=false, want true")
	}

	second := &types.SiteDailyMetrics{
		SiteID:               site.ID,
		DateFor:              dateFor,
		TotalUserCount:       41,
		CourseCount:          3,
		TotalEnrollmentCount: 90,
	}
	resaved, created, err := repo.Upsert(ctx, tx, second)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Fatalf("second Upsert reported created=true, want false")
	}
	if resaved.ID != saved.ID {
		t.Fatalf("second Upsert produced a new row id %s, want existing %s", resaved.ID, saved.ID)
	}

	var count int64
	if err := tx.WithContext(ctx).
		Model(&types.SiteDailyMetrics{}).
		Where("site_id = ? AND date_for = ?", site.ID, dateFor).
		Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows for (site, date) = %d, want exactly 1", count)
	}

	row, err := repo.GetByID(ctx, tx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if row.TotalUserCount != 41 || row.CourseCount != 3 || row.TotalEnrollmentCount != 90 {
		t.Fatalf("surviving row carries stale values: %+v", row)
	}
}

package search

import (
	"context"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adboard-backend/internal/model"
)

// MatchLimitMax caps how many rows an alert evaluation returns in one call.
const MatchLimitMax = 500

// Matcher evaluates saved job alerts against the live listing set. It is a
// pure read: it never touches last_notified_at or last_matched_count, which
// belong to the notification dispatcher.
type Matcher struct {
	DB *gorm.DB
}

// NewMatcher creates a Matcher on the given ORM handle.
func NewMatcher(db *gorm.DB) *Matcher {
	return &Matcher{DB: db}
}

// MatchAlert returns up to limit listings matching the alert criteria,
// newest first. The limit is clamped to [1, MatchLimitMax].
func (m *Matcher) MatchAlert(ctx context.Context, alert *model.JobAlert, limit int) ([]model.Listing, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MatchLimitMax {
		limit = MatchLimitMax
	}

	var items []model.Listing
	err := m.base(ctx, alert).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Limit(limit).
		Preload("Category").
		Preload("Location").
		Preload("Currency").
		Find(&items).Error
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return items, nil
}

// CountMatches counts every matching listing with a real COUNT query
// instead of the legacy capped scan.
func (m *Matcher) CountMatches(ctx context.Context, alert *model.JobAlert) (int64, error) {
	var total int64
	if err := m.base(ctx, alert).Count(&total).Error; err != nil {
		return 0, wrapQueryErr(err)
	}
	return total, nil
}

// base builds the predicate set for one alert over the approved, active
// listing pool, reusing the engine's filter composition.
func (m *Matcher) base(ctx context.Context, alert *model.JobAlert) *gorm.DB {
	spec := FilterSpec{
		Status:    model.StatusActive,
		JobTypes:  []string(alert.JobTypes),
		SalaryMin: alert.SalaryMin,
		SalaryMax: alert.SalaryMax,
	}
	if alert.LocationID != nil {
		spec.LocationIDs = []uint{*alert.LocationID}
	}
	if alert.CategoryID != nil {
		spec.CategoryIDs = []uint{*alert.CategoryID}
	}

	// Alerts are long-lived rows that may have been edited into an
	// inconsistent state; an inverted band must degrade, not crash. The
	// invalid upper bound is treated as unbounded.
	if spec.SalaryMin != nil && spec.SalaryMax != nil && *spec.SalaryMax < *spec.SalaryMin {
		log.Printf("job alert %d has salary_max %.2f below salary_min %.2f, ignoring upper bound",
			alert.ID, *spec.SalaryMax, *spec.SalaryMin)
		spec.SalaryMax = nil
	}

	tx := m.DB.WithContext(ctx).Model(&model.Listing{}).
		Where("approval_status = ?", model.ApprovalApproved)
	tx = applyFilterSpec(tx, spec, SystemClock.Now())
	return m.applyKeywords(tx, alert.Keywords)
}

// applyKeywords OR-matches each alert keyword against title and
// description. An alert with no keywords skips the predicate entirely
// rather than matching nothing.
func (m *Matcher) applyKeywords(tx *gorm.DB, keywords []string) *gorm.DB {
	var group *gorm.DB
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		pattern := "%" + kw + "%"
		if group == nil {
			group = m.DB.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
		} else {
			group = group.Or("title ILIKE ? OR description ILIKE ?", pattern, pattern)
		}
	}
	if group == nil {
		return tx
	}
	return tx.Where(group)
}

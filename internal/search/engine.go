package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adboard-backend/internal/model"
)

// ErrQueryFailed marks a data-access failure inside the search core. The
// core never retries; callers decide what to do with it.
var ErrQueryFailed = errors.New("listing query failed")

func wrapQueryErr(err error) error {
	return fmt.Errorf("%w: %s", ErrQueryFailed, err.Error())
}

// promoColumns maps each promotional flag to its boolean and expiry column.
// Fixed table so no flag name ever reaches SQL as user input.
var promoColumns = map[model.PromoFlag][2]string{
	model.PromoFeatured:  {"is_featured", "featured_expires_at"},
	model.PromoSuggested: {"is_suggested", "suggested_expires_at"},
	model.PromoPaid:      {"is_paid", "paid_expires_at"},
	model.PromoPromoted:  {"is_promoted", "promoted_expires_at"},
	model.PromoSponsored: {"is_sponsored", "sponsored_expires_at"},
	model.PromoBusiness:  {"is_business", "business_expires_at"},
	model.PromoStore:     {"is_store", "store_expires_at"},
}

// Engine runs ranked, filtered, paginated listing queries. It is a pure
// read path: stateless, safe for concurrent use, never mutates listings.
type Engine struct {
	DB    *gorm.DB
	Clock Clock
}

// NewEngine creates an Engine on the given ORM handle using the wall clock.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db, Clock: SystemClock}
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock.Now()
	}
	return time.Now()
}

// Search runs the public listing search: only approved listings are
// visible, status defaults to active when the FilterSpec leaves it unset.
func (e *Engine) Search(ctx context.Context, spec FilterSpec, sortBy Sort, page PageRequest) (PageResult, error) {
	tx := e.DB.WithContext(ctx).Model(&model.Listing{}).
		Where("approval_status = ?", model.ApprovalApproved)
	return e.run(tx, spec, sortBy, page)
}

// MyListings runs the owner-scoped variant: restricted to the caller's
// listings with no approval-status restriction, so owners see their
// pending and rejected posts too. The scoping rides the FilterSpec's
// CustomerID predicate, overriding whatever the caller put there.
func (e *Engine) MyListings(ctx context.Context, customerID uuid.UUID, spec FilterSpec, sortBy Sort, page PageRequest) (PageResult, error) {
	spec.CustomerID = &customerID
	tx := e.DB.WithContext(ctx).Model(&model.Listing{})
	return e.run(tx, spec, sortBy, page)
}

func (e *Engine) run(tx *gorm.DB, spec FilterSpec, sortBy Sort, page PageRequest) (PageResult, error) {
	now := e.now()

	if spec.CategoryIDs == nil && spec.CategoryRef != "" {
		ids, err := ExpandCategory(e.DB, spec.CategoryRef)
		if err != nil {
			return PageResult{}, err
		}
		spec.CategoryIDs = ids
	}

	tx = applyFilterSpec(tx, spec, now)

	// Total is counted over the filtered set before pagination.
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return PageResult{}, wrapQueryErr(err)
	}

	tx = applyOrder(tx, sortBy, now)

	var items []model.Listing
	err := tx.
		Preload("Category").
		Preload("Location").
		Preload("Customer").
		Preload("Currency").
		Preload("Package").
		Offset(page.Offset()).
		Limit(page.Size()).
		Find(&items).Error
	if err != nil {
		return PageResult{}, wrapQueryErr(err)
	}

	return newPageResult(items, total, page.Size(), page.CurrentPage()), nil
}

// applyFilterSpec composes the FilterSpec predicates onto a listing query.
// Shared between the search engine and the job alert matcher.
func applyFilterSpec(tx *gorm.DB, spec FilterSpec, now time.Time) *gorm.DB {
	if spec.CategoryIDs != nil {
		// An empty id set must match nothing, not drop the filter.
		tx = tx.Where("category_id IN ?", spec.CategoryIDs)
	}

	if len(spec.CurrencyIDs) > 0 {
		tx = tx.Where("currency_id IN ?", spec.CurrencyIDs)
	}

	// Job listings may carry compensation only in the salary columns, so
	// price bounds check both.
	if spec.MinPrice != nil {
		tx = tx.Where("(price >= ? OR salary_max >= ?)", *spec.MinPrice, *spec.MinPrice)
	}
	if spec.MaxPrice != nil {
		tx = tx.Where("(price <= ? OR salary_min <= ?)", *spec.MaxPrice, *spec.MaxPrice)
	}

	if len(spec.JobTypes) > 0 {
		tx = tx.Where("job_type IN ?", spec.JobTypes)
	}

	tx = applySalaryRange(tx, spec.SalaryMin, spec.SalaryMax)

	if len(spec.LocationIDs) > 0 {
		tx = tx.Where("location_id IN ?", spec.LocationIDs)
	}

	if spec.Keyword != "" {
		pattern := "%" + spec.Keyword + "%"
		tx = tx.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	status := spec.Status
	if status == "" {
		status = model.StatusActive
	}
	tx = tx.Where("status = ?", status)

	for _, flag := range spec.Promos {
		cols, ok := promoColumns[flag]
		if !ok {
			continue
		}
		tx = tx.Where(
			fmt.Sprintf("%s = TRUE AND (%s IS NULL OR %s > ?)", cols[0], cols[1], cols[1]),
			now,
		)
	}

	if spec.CustomerID != nil {
		tx = tx.Where("customer_id = ?", *spec.CustomerID)
	}

	return tx
}

// applySalaryRange filters listings whose salary band overlaps the
// requested one. A listing bound that is NULL is open on that side; listings
// with no salary information at all are excluded while a salary filter is
// in effect.
func applySalaryRange(tx *gorm.DB, min, max *float64) *gorm.DB {
	if min == nil && max == nil {
		return tx
	}
	tx = tx.Where("(salary_min IS NOT NULL OR salary_max IS NOT NULL)")
	if min != nil {
		tx = tx.Where("(salary_max IS NULL OR salary_max >= ?)", *min)
	}
	if max != nil {
		tx = tx.Where("(salary_min IS NULL OR salary_min <= ?)", *max)
	}
	return tx
}

// applyOrder applies the resolved sort. Featured priority ranks
// currently-active-featured listings first, then the resolved column
// breaks ties. Salary columns sort NULLS LAST so salary-less listings
// always trail. Column and direction come from the closed allow-list,
// never from request input; the clock value is bound, not interpolated.
func applyOrder(tx *gorm.DB, sortBy Sort, now time.Time) *gorm.DB {
	dir := "ASC"
	if sortBy.Desc {
		dir = "DESC"
	}

	if sortBy.FeaturedPriority {
		return tx.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL: fmt.Sprintf(
					"CASE WHEN is_featured AND (featured_expires_at IS NULL OR featured_expires_at > ?) THEN 0 ELSE 1 END, %s %s",
					sortBy.Column, dir,
				),
				Vars: []interface{}{now},
			},
		})
	}

	switch sortBy.Column {
	case "salary_min", "salary_max":
		tx = tx.Order(fmt.Sprintf("%s %s NULLS LAST", sortBy.Column, dir))
	default:
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortBy.Column},
			Desc:   sortBy.Desc,
		})
	}
	return tx
}

package alert

import (
	"time"

	"adboard-backend/internal/model"

	"gorm.io/gorm"
)

// DueAlerts returns the active alerts whose notification interval has
// elapsed as of now. Instant alerts are always due, daily alerts after
// 24 hours and weekly alerts after 7 days. Alerts that have never been
// notified are due immediately.
func DueAlerts(db *gorm.DB, now time.Time) ([]model.JobAlert, error) {
	alerts := []model.JobAlert{}

	err := db.
		Where("is_active = TRUE").
		Where(
			db.Where("frequency = ?", model.FrequencyInstant).
				Or("last_notified_at IS NULL").
				Or("frequency = ? AND last_notified_at < ?", model.FrequencyDaily, now.Add(-24*time.Hour)).
				Or("frequency = ? AND last_notified_at < ?", model.FrequencyWeekly, now.Add(-7*24*time.Hour)),
		).
		Order("created_at ASC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	return alerts, nil
}

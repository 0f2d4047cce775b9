package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobAlert frequency values
var (
	FrequencyInstant = "instant"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"

	Frequencies = []string{FrequencyInstant, FrequencyDaily, FrequencyWeekly}
)

// EditableJobAlertInfo is part of a job alert that the owning customer can edit
type EditableJobAlertInfo struct {
	Name              string         `gorm:"type:text" json:"name"`
	Keywords          pq.StringArray `gorm:"type:text[]" json:"keywords"`
	LocationID        *uint          `gorm:"index" json:"location_id"`
	CategoryID        *uint          `gorm:"index" json:"category_id"`
	JobTypes          pq.StringArray `gorm:"type:text[]" json:"job_types"`
	SalaryMin         *float64       `gorm:"type:decimal(12,2)" json:"salary_min"`
	SalaryMax         *float64       `gorm:"type:decimal(12,2)" json:"salary_max"`
	Frequency         string         `gorm:"type:text;default:'daily'" json:"frequency"`
	NotificationEmail string         `gorm:"type:text" json:"notification_email"`
}

// JobAlert is gorm model for a saved search a customer wants evaluated
// repeatedly against new listings. LastNotifiedAt and LastMatchedCount are
// written only by the notification dispatcher, never by the matcher.
type JobAlert struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"customer_id"`
	Customer   User      `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
	EditableJobAlertInfo
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	LastNotifiedAt   *time.Time `gorm:"type:timestamp" json:"last_notified_at,omitempty"`
	LastMatchedCount int        `gorm:"default:0" json:"last_matched_count"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

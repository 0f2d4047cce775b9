package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing status values
var (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Listing approval_status values. Only approved listings show up in public search.
var (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
	ApprovalHarmful  = "harmful"
)

// JobTypes is the set of accepted job_type values
var JobTypes = []string{"full-time", "part-time", "contract", "freelance", "internship"}

// PromoFlag identifies one of the paid promotional placements of a listing.
type PromoFlag string

// Promotional placements a listing can purchase
const (
	PromoFeatured  PromoFlag = "featured"
	PromoSuggested PromoFlag = "suggested"
	PromoPaid      PromoFlag = "paid"
	PromoPromoted  PromoFlag = "promoted"
	PromoSponsored PromoFlag = "sponsored"
	PromoBusiness  PromoFlag = "business"
	PromoStore     PromoFlag = "store"
)

// PromoFlags list every promotional placement, in envelope order
var PromoFlags = []PromoFlag{
	PromoFeatured, PromoSuggested, PromoPaid, PromoPromoted,
	PromoSponsored, PromoBusiness, PromoStore,
}

// EditableListingInfo is part of listing that owner can edit
type EditableListingInfo struct {
	Title       string     `gorm:"type:text" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"type:decimal(12,2);default:0" json:"price"`
	CategoryID  uint       `gorm:"index" json:"category_id"`
	LocationID  *uint      `gorm:"index" json:"location_id"`
	CurrencyID  *uint      `json:"currency_id"`
	JobType     *string    `gorm:"type:text" json:"job_type"`
	SalaryMin   *float64   `gorm:"type:decimal(12,2)" json:"salary_min"`
	SalaryMax   *float64   `gorm:"type:decimal(12,2)" json:"salary_max"`
	EndDate     *time.Time `gorm:"type:timestamp" json:"end_date,omitempty"`
}

// Listing is gorm model for a postable marketplace item (job, venue, classified)
type Listing struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"customer_id"`
	Customer   User      `gorm:"foreignKey:CustomerID;references:ID" json:"customer"`
	EditableListingInfo
	Category       Category  `gorm:"foreignKey:CategoryID;references:ID" json:"category"`
	Location       *Location `gorm:"foreignKey:LocationID;references:ID" json:"location,omitempty"`
	Currency       *Currency `gorm:"foreignKey:CurrencyID;references:ID" json:"currency,omitempty"`
	PackageID      *uint     `json:"package_id"`
	Package        *Package  `gorm:"foreignKey:PackageID;references:ID" json:"package,omitempty"`
	Status         string    `gorm:"type:text;default:'active';index" json:"status"`
	ApprovalStatus string    `gorm:"type:text;default:'pending';index" json:"approval_status"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt      time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`

	IsFeatured        bool       `gorm:"default:false" json:"is_featured"`
	FeaturedExpiresAt *time.Time `gorm:"type:timestamp" json:"featured_expires_at,omitempty"`

	IsSuggested        bool       `gorm:"default:false" json:"is_suggested"`
	SuggestedExpiresAt *time.Time `gorm:"type:timestamp" json:"suggested_expires_at,omitempty"`

	IsPaid        bool       `gorm:"default:false" json:"is_paid"`
	PaidExpiresAt *time.Time `gorm:"type:timestamp" json:"paid_expires_at,omitempty"`

	IsPromoted        bool       `gorm:"default:false" json:"is_promoted"`
	PromotedExpiresAt *time.Time `gorm:"type:timestamp" json:"promoted_expires_at,omitempty"`

	IsSponsored        bool       `gorm:"default:false" json:"is_sponsored"`
	SponsoredExpiresAt *time.Time `gorm:"type:timestamp" json:"sponsored_expires_at,omitempty"`

	IsBusiness        bool       `gorm:"default:false" json:"is_business"`
	BusinessExpiresAt *time.Time `gorm:"type:timestamp" json:"business_expires_at,omitempty"`

	IsStore        bool       `gorm:"default:false" json:"is_store"`
	StoreExpiresAt *time.Time `gorm:"type:timestamp" json:"store_expires_at,omitempty"`
}

// promoState returns the boolean and expiry pair backing one promotional flag.
func (l *Listing) promoState(flag PromoFlag) (bool, *time.Time) {
	switch flag {
	case PromoFeatured:
		return l.IsFeatured, l.FeaturedExpiresAt
	case PromoSuggested:
		return l.IsSuggested, l.SuggestedExpiresAt
	case PromoPaid:
		return l.IsPaid, l.PaidExpiresAt
	case PromoPromoted:
		return l.IsPromoted, l.PromotedExpiresAt
	case PromoSponsored:
		return l.IsSponsored, l.SponsoredExpiresAt
	case PromoBusiness:
		return l.IsBusiness, l.BusinessExpiresAt
	case PromoStore:
		return l.IsStore, l.StoreExpiresAt
	}
	return false, nil
}

// PromoActive reports whether a promotional flag currently applies:
// the flag must be set and its expiry must be NULL or in the future.
func (l *Listing) PromoActive(flag PromoFlag, now time.Time) bool {
	on, expires := l.promoState(flag)
	if !on {
		return false
	}
	return expires == nil || expires.After(now)
}

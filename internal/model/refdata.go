package model

// Location is gorm model for a place listings can be posted in
type Location struct {
	ID   uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Slug string `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:text;not null" json:"name"`
}

// Currency is gorm model for a currency listings can price in
type Currency struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Code   string `gorm:"type:text;uniqueIndex;not null" json:"code"`
	Symbol string `gorm:"type:text" json:"symbol"`
}

// Package is gorm model for a paid promotion package a listing can carry
type Package struct {
	ID           uint    `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Name         string  `gorm:"type:text;not null" json:"name"`
	Price        float64 `gorm:"type:decimal(12,2);default:0" json:"price"`
	DurationDays int     `gorm:"default:30" json:"duration_days"`
}

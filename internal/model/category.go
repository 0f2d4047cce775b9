package model

// Category is gorm model for a hierarchical listing category.
// The tree is two levels deep in practice: top-level parents and their children.
// Listings always reference a leaf-level category id.
type Category struct {
	ID       uint       `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Slug     string     `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Name     string     `gorm:"type:text;not null" json:"name"`
	ParentID *uint      `gorm:"index" json:"parent_id"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

package search

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"adboard-backend/internal/model"
)

// ExpandCategory resolves a category reference (numeric id or slug) to the
// concrete category ids to filter on. A parent expands to all of its
// children's ids; a leaf resolves to itself. An unknown reference returns an
// empty, non-nil slice so the filter matches nothing instead of silently
// returning unfiltered results.
func ExpandCategory(db *gorm.DB, ref string) ([]uint, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	var cat model.Category
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		err = db.First(&cat, "id = ?", uint(id)).Error
	} else {
		err = db.First(&cat, "slug = ?", ref).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []uint{}, nil
		}
		return nil, wrapQueryErr(err)
	}

	var childIDs []uint
	if err := db.Model(&model.Category{}).
		Where("parent_id = ?", cat.ID).
		Pluck("id", &childIDs).Error; err != nil {
		return nil, wrapQueryErr(err)
	}

	if len(childIDs) > 0 {
		return childIDs, nil
	}
	return []uint{cat.ID}, nil
}

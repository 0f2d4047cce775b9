// Package category exposes the category browsing endpoints.
package category

import (
	"errors"
	"net/http"
	"strconv"

	"adboard-backend/internal/database"
	"adboard-backend/internal/model"
	"adboard-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryController handles category related requests
type CategoryController struct {
	DB *database.DBInstance
}

func NewCategoryController(db *database.DBInstance) *CategoryController {
	return &CategoryController{DB: db}
}

// GetCategories godoc
//
//	@Summary		List top-level categories with their children
//	@Tags			category
//	@Produce		json
//	@Success		200	{array}		model.Category
//	@Failure		500	{object}	utilities.ErrorResponse
//	@Router			/category [get]
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories := []model.Category{}
	err := cc.DB.
		Preload("Children").
		Where("parent_id IS NULL").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
//
//	@Summary		Get a category by id or slug
//	@Tags			category
//	@Produce		json
//	@Param			ref	path		string	true	"Category id or slug"
//	@Success		200	{object}	model.Category
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/category/{ref} [get]
func (cc *CategoryController) GetCategory(c *gin.Context) {
	ref := c.Param("ref")

	var found model.Category
	tx := cc.DB.Preload("Children")
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		err = tx.First(&found, "id = ?", uint(id)).Error
	} else {
		err = tx.First(&found, "slug = ?", ref).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetCategoryChildren godoc
//
//	@Summary		List the children of a category
//	@Description	Returns the child categories of the referenced category, empty for a leaf
//	@Tags			category
//	@Produce		json
//	@Param			ref	path		string	true	"Category id or slug"
//	@Success		200	{array}		model.Category
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/category/{ref}/children [get]
func (cc *CategoryController) GetCategoryChildren(c *gin.Context) {
	ref := c.Param("ref")

	var found model.Category
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		err = cc.DB.First(&found, "id = ?", uint(id)).Error
	} else {
		err = cc.DB.First(&found, "slug = ?", ref).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch category"})
		return
	}

	children := []model.Category{}
	if err := cc.DB.Where("parent_id = ?", found.ID).Order("name ASC").Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, children)
}

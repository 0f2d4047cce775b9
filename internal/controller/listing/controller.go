// Package listing exposes the listing search and management endpoints.
package listing

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"adboard-backend/internal/database"
	"adboard-backend/internal/model"
	"adboard-backend/internal/search"
	"adboard-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListingController handles listing related requests
type ListingController struct {
	DB     *database.DBInstance
	Engine *search.Engine
}

func NewListingController(db *database.DBInstance) *ListingController {
	return &ListingController{
		DB:     db,
		Engine: search.NewEngine(db.DB),
	}
}

// SearchListings godoc
//
//	@Summary		Search approved listings
//	@Description	Returns approved listings matching the supplied filters, sorted and paginated
//	@Tags			listing
//	@Produce		json
//	@Param			keyword		query	string	false	"Keyword matched against title and description"
//	@Param			category	query	string	false	"Category id or slug, expanded to its children"
//	@Param			location_id	query	string	false	"Location id list (repeated or comma-separated)"
//	@Param			currency	query	string	false	"Currency id list (repeated or comma-separated)"
//	@Param			job_type	query	string	false	"Job type list (repeated or comma-separated)"
//	@Param			min_price	query	number	false	"Lower price bound, also matched against salary_max"
//	@Param			max_price	query	number	false	"Upper price bound, also matched against salary_min"
//	@Param			salary_min	query	number	false	"Lower salary bound (band overlap)"
//	@Param			salary_max	query	number	false	"Upper salary bound (band overlap)"
//	@Param			status		query	string	false	"Listing status (active or inactive, default active)"
//	@Param			featured	query	string	false	"Only currently featured listings (true/1/yes)"
//	@Param			suggested	query	string	false	"Only currently suggested listings (true/1/yes)"
//	@Param			paid		query	string	false	"Only currently paid listings (true/1/yes)"
//	@Param			promoted	query	string	false	"Only currently promoted listings (true/1/yes)"
//	@Param			sponsored	query	string	false	"Only currently sponsored listings (true/1/yes)"
//	@Param			business	query	string	false	"Only current business placements (true/1/yes)"
//	@Param			store		query	string	false	"Only current store placements (true/1/yes)"
//	@Param			sort		query	string	false	"Sort key"
//	@Param			sort_type	query	string	false	"Sort direction (asc or desc)"
//	@Param			page		query	int		false	"Page number"
//	@Param			per_page	query	int		false	"Page size"
//	@Param			skip		query	int		false	"Rows to skip (selects skip/limit pagination)"
//	@Param			limit		query	int		false	"Page size in skip/limit mode"
//	@Success		200	{object}	search.PageResult
//	@Failure		500	{object}	utilities.ErrorResponse
//	@Router			/listing [get]
func (lc *ListingController) SearchListings(c *gin.Context) {
	query := c.Request.URL.Query()

	spec := search.BuildFilterSpec(query)
	sortBy := search.ResolveSort(query.Get("sort"), query.Get("sort_type"), search.DirDesc)
	page := search.ParsePageRequest(query)

	result, err := lc.Engine.Search(c.Request.Context(), spec, sortBy, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to search listings"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyListings godoc
//
//	@Summary		List the caller's own listings
//	@Description	Returns every listing owned by the authenticated customer regardless of approval status
//	@Tags			listing
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	search.PageResult
//	@Failure		401	{object}	utilities.ErrorResponse
//	@Failure		500	{object}	utilities.ErrorResponse
//	@Router			/listing/my [get]
func (lc *ListingController) GetMyListings(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	query := c.Request.URL.Query()

	spec := search.BuildFilterSpec(query)
	sortBy := search.ResolveSort(query.Get("sort"), query.Get("sort_type"), search.DirAsc)
	page := search.ParsePageRequest(query)

	result, err := lc.Engine.MyListings(c.Request.Context(), user.ID, spec, sortBy, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetListingByID godoc
//
//	@Summary		Get a single approved listing
//	@Tags			listing
//	@Produce		json
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	model.Listing
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/listing/{id} [get]
func (lc *ListingController) GetListingByID(c *gin.Context) {
	id := c.Param("id")

	var found model.Listing
	err := lc.DB.
		Preload("Category").
		Preload("Location").
		Preload("Currency").
		Preload("Customer").
		Preload("Package").
		Where("approval_status = ?", model.ApprovalApproved).
		First(&found, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch listing"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// CreateListing godoc
//
//	@Summary		Create a listing
//	@Description	Creates a listing owned by the caller, pending moderation
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			listing	body		model.EditableListingInfo	true	"Listing info"
//	@Success		201	{object}	model.Listing
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Failure		401	{object}	utilities.ErrorResponse
//	@Router			/listing [post]
func (lc *ListingController) CreateListing(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	var info model.EditableListingInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if msg := validateListingInfo(&info); msg != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	// Job listings often carry no explicit price, fall back to the salary floor.
	if info.Price == 0 && info.SalaryMin != nil {
		info.Price = *info.SalaryMin
	}

	created := model.Listing{
		EditableListingInfo: info,
		CustomerID:          user.ID,
		Status:              model.StatusActive,
		ApprovalStatus:      model.ApprovalPending,
	}

	if err := lc.DB.Create(&created).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// EditListing godoc
//
//	@Summary		Edit a listing
//	@Description	Updates an owned listing. Admins can edit any listing.
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Listing ID"
//	@Param			listing	body		model.EditableListingInfo	true	"Fields to update"
//	@Success		200	{object}	model.Listing
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Failure		403	{object}	utilities.ErrorResponse
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/listing/{id} [patch]
func (lc *ListingController) EditListing(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	id := c.Param("id")

	var existing model.Listing
	if err := lc.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch listing"})
		return
	}

	if existing.CustomerID != user.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not allowed to edit this listing"})
		return
	}

	var info model.EditableListingInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if msg := validateListingInfo(&info); msg != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	if err := lc.DB.Model(&existing).Updates(info).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

// DeleteListing godoc
//
//	@Summary		Delete a listing
//	@Description	Deletes an owned listing. Admins can delete any listing.
//	@Tags			listing
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	utilities.MessageResponse
//	@Failure		403	{object}	utilities.ErrorResponse
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/listing/{id} [delete]
func (lc *ListingController) DeleteListing(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	id := c.Param("id")

	var existing model.Listing
	if err := lc.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch listing"})
		return
	}

	if existing.CustomerID != user.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not allowed to delete this listing"})
		return
	}

	if err := lc.DB.Delete(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to delete listing"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Listing deleted"})
}

type approvalUpdate struct {
	ApprovalStatus string `json:"approval_status" binding:"required,oneof=pending approved rejected harmful"`
}

// SetApprovalStatus godoc
//
//	@Summary		Moderate a listing
//	@Description	Sets the approval status of a listing. Admin only.
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Listing ID"
//	@Param			status	body		approvalUpdate	true	"New approval status"
//	@Success		200	{object}	model.Listing
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/listing/{id}/approval [patch]
func (lc *ListingController) SetApprovalStatus(c *gin.Context) {
	id := c.Param("id")

	var update approvalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid approval status"})
		return
	}

	var existing model.Listing
	if err := lc.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch listing"})
		return
	}

	if err := lc.DB.Model(&existing).Update("approval_status", update.ApprovalStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

func validateListingInfo(info *model.EditableListingInfo) string {
	if info.JobType != nil && !slices.Contains(model.JobTypes, *info.JobType) {
		return "Invalid job type"
	}
	if info.SalaryMin != nil && info.SalaryMax != nil && *info.SalaryMax < *info.SalaryMin {
		return "salary_max must not be lower than salary_min"
	}
	return ""
}

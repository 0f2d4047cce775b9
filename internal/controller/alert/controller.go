// Package alert exposes the job alert endpoints.
package alert

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"adboard-backend/internal/database"
	"adboard-backend/internal/model"
	"adboard-backend/internal/search"
	"adboard-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultMatchLimit = 20

// AlertController handles job alert related requests
type AlertController struct {
	DB      *database.DBInstance
	Matcher *search.Matcher
}

func NewAlertController(db *database.DBInstance) *AlertController {
	return &AlertController{
		DB:      db,
		Matcher: &search.Matcher{DB: db.DB},
	}
}

// GetAlerts godoc
//
//	@Summary		List the caller's job alerts
//	@Tags			alert
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		model.JobAlert
//	@Failure		401	{object}	utilities.ErrorResponse
//	@Router			/alert [get]
func (ac *AlertController) GetAlerts(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	alerts := []model.JobAlert{}
	if err := ac.DB.Where("customer_id = ?", user.ID).Order("created_at ASC").Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// CreateAlert godoc
//
//	@Summary		Create a job alert
//	@Tags			alert
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			alert	body		model.EditableJobAlertInfo	true	"Alert info"
//	@Success		201	{object}	model.JobAlert
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Failure		401	{object}	utilities.ErrorResponse
//	@Router			/alert [post]
func (ac *AlertController) CreateAlert(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return
	}

	var info model.EditableJobAlertInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if info.Frequency == "" {
		info.Frequency = model.FrequencyDaily
	}
	if msg := validateAlertInfo(&info); msg != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	created := model.JobAlert{
		EditableJobAlertInfo: info,
		CustomerID:           user.ID,
		IsActive:             true,
	}

	if err := ac.DB.Create(&created).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

type alertUpdate struct {
	model.EditableJobAlertInfo
	IsActive *bool `json:"is_active"`
}

// EditAlert godoc
//
//	@Summary		Edit a job alert
//	@Tags			alert
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int			true	"Alert ID"
//	@Param			alert	body		alertUpdate	true	"Fields to update"
//	@Success		200	{object}	model.JobAlert
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/alert/{id} [patch]
func (ac *AlertController) EditAlert(c *gin.Context) {
	existing, ok := ac.ownedAlert(c)
	if !ok {
		return
	}

	var update alertUpdate
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if update.Frequency == "" {
		update.Frequency = existing.Frequency
	}
	if msg := validateAlertInfo(&update.EditableJobAlertInfo); msg != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	if err := ac.DB.Model(&existing).Updates(update.EditableJobAlertInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update alert"})
		return
	}
	if update.IsActive != nil {
		if err := ac.DB.Model(&existing).Update("is_active", *update.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update alert"})
			return
		}
	}

	c.JSON(http.StatusOK, existing)
}

// DeleteAlert godoc
//
//	@Summary		Delete a job alert
//	@Tags			alert
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Alert ID"
//	@Success		200	{object}	utilities.MessageResponse
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/alert/{id} [delete]
func (ac *AlertController) DeleteAlert(c *gin.Context) {
	existing, ok := ac.ownedAlert(c)
	if !ok {
		return
	}

	if err := ac.DB.Delete(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to delete alert"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Alert deleted"})
}

// GetAlertMatches godoc
//
//	@Summary		Preview listings matching an alert
//	@Tags			alert
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int	true	"Alert ID"
//	@Param			limit	query	int	false	"Maximum number of listings to return"
//	@Success		200	{object}	map[string]any
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/alert/{id}/matches [get]
func (ac *AlertController) GetAlertMatches(c *gin.Context) {
	existing, ok := ac.ownedAlert(c)
	if !ok {
		return
	}

	limit := defaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	matches, err := ac.Matcher.MatchAlert(c.Request.Context(), &existing, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to match alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": matches, "count": len(matches)})
}

// CountAlertMatches godoc
//
//	@Summary		Count listings matching an alert
//	@Tags			alert
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Alert ID"
//	@Success		200	{object}	map[string]int64
//	@Failure		404	{object}	utilities.ErrorResponse
//	@Router			/alert/{id}/matches/count [get]
func (ac *AlertController) CountAlertMatches(c *gin.Context) {
	existing, ok := ac.ownedAlert(c)
	if !ok {
		return
	}

	count, err := ac.Matcher.CountMatches(c.Request.Context(), &existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to count matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ownedAlert loads the alert from the path and enforces ownership.
// Writes the error response itself when the lookup fails.
func (ac *AlertController) ownedAlert(c *gin.Context) (model.JobAlert, bool) {
	var existing model.JobAlert

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "User not found"})
		return existing, false
	}

	id := c.Param("id")
	if err := ac.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Alert not found"})
			return existing, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch alert"})
		return existing, false
	}

	if existing.CustomerID != user.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Alert not found"})
		return existing, false
	}

	return existing, true
}

func validateAlertInfo(info *model.EditableJobAlertInfo) string {
	if !slices.Contains(model.Frequencies, info.Frequency) {
		return "Invalid frequency"
	}
	for _, jt := range info.JobTypes {
		if !slices.Contains(model.JobTypes, jt) {
			return "Invalid job type: " + jt
		}
	}
	if info.SalaryMin != nil && info.SalaryMax != nil && *info.SalaryMax < *info.SalaryMin {
		return "salary_max must not be lower than salary_min"
	}
	return ""
}

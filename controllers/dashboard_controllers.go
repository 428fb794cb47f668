package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodplate-dashboard/dashboard"
	"github.com/yeremiapane/foodplate-dashboard/models"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

const dashboardPath = "/dashboard"

type DashboardController struct {
	Dash *dashboard.Dashboard
}

func NewDashboardController(d *dashboard.Dashboard) *DashboardController {
	return &DashboardController{Dash: d}
}

// ShowDashboard renders the menu, loading it on the first visit.
func (dc *DashboardController) ShowDashboard(c *gin.Context) {
	dc.Dash.Mount(c.Request.Context())
	c.HTML(http.StatusOK, "dashboard.html", dc.Dash.Snapshot())
}

// GetState returns the view state as JSON.
func (dc *DashboardController) GetState(c *gin.Context) {
	dc.Dash.Mount(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Dashboard state", dc.Dash.Snapshot())
}

func (dc *DashboardController) OpenAddModal(c *gin.Context) {
	dc.Dash.OpenAddModal()
	backToDashboard(c)
}

func (dc *DashboardController) CloseAddModal(c *gin.Context) {
	dc.Dash.CloseAddModal()
	backToDashboard(c)
}

func (dc *DashboardController) OpenEditModal(c *gin.Context) {
	food, ok := dc.findFood(c)
	if !ok {
		return
	}
	dc.Dash.OpenEditModal(food)
	backToDashboard(c)
}

func (dc *DashboardController) CloseEditModal(c *gin.Context) {
	dc.Dash.CloseEditModal()
	backToDashboard(c)
}

// AddFood is the add modal's submit. Failures reach the caller as 502.
func (dc *DashboardController) AddFood(c *gin.Context) {
	var draft models.FoodPlateDraft
	if err := c.ShouldBind(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid form"))
		return
	}

	if err := dc.Dash.Add(c.Request.Context(), draft); err != nil {
		utils.ErrorLogger.WithError(err).Error("add food failed")
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}

	dc.Dash.CloseAddModal()
	backToDashboard(c)
}

// UpdateFood is the edit modal's submit, applied to the plate being edited.
func (dc *DashboardController) UpdateFood(c *gin.Context) {
	var draft models.FoodPlateDraft
	if err := c.ShouldBind(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid form"))
		return
	}

	if err := dc.Dash.Update(c.Request.Context(), draft); err != nil {
		unhandled(c, "update food", err)
		return
	}

	dc.Dash.CloseEditModal()
	backToDashboard(c)
}

func (dc *DashboardController) ToggleAvailability(c *gin.Context) {
	food, ok := dc.findFood(c)
	if !ok {
		return
	}

	if err := dc.Dash.ToggleAvailability(c.Request.Context(), food); err != nil {
		unhandled(c, "toggle availability", err)
		return
	}
	backToDashboard(c)
}

func (dc *DashboardController) DeleteFood(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid food id"))
		return
	}

	if err := dc.Dash.Delete(c.Request.Context(), id); err != nil {
		unhandled(c, "delete food", err)
		return
	}
	backToDashboard(c)
}

// findFood resolves :id against the local list and writes the error response
// when it cannot.
func (dc *DashboardController) findFood(c *gin.Context) (models.FoodPlate, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid food id"))
		return models.FoodPlate{}, false
	}

	food, ok := dc.Dash.Find(id)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return models.FoodPlate{}, false
	}
	return food, true
}

// unhandled logs a failed action; the page is shown again unchanged.
func unhandled(c *gin.Context, action string, err error) {
	utils.ErrorLogger.WithError(err).WithField("action", action).Warn("unhandled dashboard failure")
	_ = c.Error(err)
	backToDashboard(c)
}

func backToDashboard(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

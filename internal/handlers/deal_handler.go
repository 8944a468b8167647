package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aipipeline/internal/models"
	"aipipeline/internal/services"
)

type DealHandler struct {
	Service *services.DealService
}

func NewDealHandler(service *services.DealService) *DealHandler {
	return &DealHandler{Service: service}
}

// @Summary      Create a deal
// @Tags         Deals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        deal  body      models.CreateDealRequest  true  "Deal fields"
// @Success      201   {object}  models.Deal
// @Failure      400   {object}  map[string]string
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	var req models.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal := models.Deal{
		Title:             req.Title,
		Company:           req.Company,
		Value:             *req.Value,
		Stage:             req.Stage,
		Probability:       req.Probability,
		ContactName:       req.ContactName,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
		Notes:             req.Notes,
		ExpectedCloseDate: req.ExpectedCloseDate,
	}
	if err := h.Service.Create(getUserID(c), &deal); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidStage) || errors.Is(err, services.ErrInvalidValue) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, deal)
}

// @Summary      List own deals
// @Tags         Deals
// @Security     BearerAuth
// @Produce      json
// @Param        stage  query     string  false  "Filter by stage"
// @Success      200    {array}   models.Deal
// @Router       /api/deals [get]
func (h *DealHandler) List(c *gin.Context) {
	deals, err := h.Service.ListByOwner(getUserID(c), c.Query("stage"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidStage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *DealHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	deal, err := h.Service.GetOwned(getUserID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal := models.Deal{
		ID:                id,
		Title:             req.Title,
		Company:           req.Company,
		Value:             *req.Value,
		Stage:             req.Stage,
		Probability:       req.Probability,
		ContactName:       req.ContactName,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
		Notes:             req.Notes,
		ExpectedCloseDate: req.ExpectedCloseDate,
	}
	updated, err := h.Service.Update(getUserID(c), &deal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Move a deal to another stage
// @Tags         Deals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path      int                        true  "Deal id"
// @Param        stage  body      models.UpdateStageRequest  true  "Target stage"
// @Success      200    {object}  models.Deal
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/deals/{id}/stage [patch]
func (h *DealHandler) UpdateStage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.UpdateStage(getUserID(c), id, req.Stage)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DealHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Service.Delete(getUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DealHandler) AddActivity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.Service.AddActivity(getUserID(c), id, req.Kind, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (h *DealHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
	case errors.Is(err, services.ErrInvalidStage), errors.Is(err, services.ErrInvalidValue),
		errors.Is(err, services.ErrInvalidActivity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

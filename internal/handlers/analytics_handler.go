package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"aipipeline/internal/analytics"
	"aipipeline/internal/pdf"
	"aipipeline/internal/services"
)

type AnalyticsHandler struct {
	Service   *services.AnalyticsService
	Generator pdf.Generator
}

func NewAnalyticsHandler(service *services.AnalyticsService, generator pdf.Generator) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service, Generator: generator}
}

// @Summary      Dashboard summary
// @Description  Aggregated statistics over the caller's deals.
// @Tags         Analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  analytics.Summary
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	summary, err := h.Service.Dashboard(getUserID(c))
	if err != nil {
		log.Printf("[analytics][dashboard] failed for userID=%d: %v", getUserID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Pipeline report as PDF
// @Tags         Analytics
// @Security     BearerAuth
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	userID := getUserID(c)
	deals, err := h.Service.DealsFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deals"})
		return
	}

	path, err := h.Generator.GeneratePipelineReport(pdf.ReportData{
		Owner:       fmt.Sprintf("user #%d", userID),
		GeneratedAt: time.Now(),
		Summary:     analytics.Summarize(deals),
	})
	if err != nil {
		log.Printf("[analytics][report] pdf generation failed for userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}
	c.FileAttachment(path, "pipeline_report.pdf")
	if err := os.Remove(path); err != nil {
		log.Printf("[analytics][report] warning: could not remove %s: %v", path, err)
	}
}

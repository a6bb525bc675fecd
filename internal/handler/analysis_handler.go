package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "timetrack/backend/internal/errors"
	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/service"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

func (h *AnalysisHandler) Hours(c *gin.Context) {
	firstDay, firstDayAfter, ok := dayRangeQuery(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	rows, apiErr := h.analysisService.RunHourAnalysis(c.Request.Context(), userID, firstDay, firstDayAfter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": rows})
}

func (h *AnalysisHandler) Projects(c *gin.Context) {
	firstDay, firstDayAfter, ok := dayRangeQuery(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	rows, apiErr := h.analysisService.RunProjectAnalysis(c.Request.Context(), userID, firstDay, firstDayAfter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

func (h *AnalysisHandler) Activities(c *gin.Context) {
	firstDay, firstDayAfter, ok := dayRangeQuery(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	rows, apiErr := h.analysisService.RunActivityAnalysis(c.Request.Context(), userID, firstDay, firstDayAfter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": rows})
}

func dayRangeQuery(c *gin.Context) (string, string, bool) {
	firstDay := c.Query("firstDay")
	if firstDay == "" {
		writeError(c, invalidFirstDay())
		return "", "", false
	}
	return firstDay, c.Query("firstDayAfter"), true
}

func invalidFirstDay() *apperrors.APIError {
	return apperrors.BadRequest("missing_first_day", "firstDay query parameter is required")
}

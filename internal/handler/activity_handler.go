package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

type addActivityRequest struct {
	ProjectName  string `json:"projectName"`
	ProjectID    string `json:"projectId"`
	ActivityName string `json:"activityName"`
	ActivityID   string `json:"activityId"`
}

type changeActivityRequest struct {
	ProjectName  *string `json:"projectName"`
	ProjectID    *string `json:"projectId"`
	ActivityName *string `json:"activityName"`
	ActivityID   *string `json:"activityId"`
	Hidden       *bool   `json:"hidden"`
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	activities, apiErr := h.activityService.GetActivities(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (h *ActivityHandler) Add(c *gin.Context) {
	var req addActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	activity, apiErr := h.activityService.AddActivity(c.Request.Context(), userID, service.ActivityInput{
		ProjectName:  req.ProjectName,
		ProjectID:    req.ProjectID,
		ActivityName: req.ActivityName,
		ActivityID:   req.ActivityID,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

func (h *ActivityHandler) Change(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req changeActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	activity, apiErr := h.activityService.ChangeActivity(c.Request.Context(), userID, id, service.ChangeActivityInput{
		ProjectName:  req.ProjectName,
		ProjectID:    req.ProjectID,
		ActivityName: req.ActivityName,
		ActivityID:   req.ActivityID,
		Hidden:       req.Hidden,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.activityService.DeleteActivity(c.Request.Context(), userID, id); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

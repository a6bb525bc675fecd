package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Username string `json:"username"`
	Answer   string `json:"answer"`
}

type changeUserRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
	Email       string `json:"email"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

type deleteUserRequest struct {
	Password string `json:"password"`
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Question: req.Question,
		Answer:   req.Answer,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	password, apiErr := h.authService.ResetPassword(c.Request.Context(), req.Username, req.Answer)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"password": password})
}

func (h *AuthHandler) ChangeUser(c *gin.Context) {
	var req changeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	user, apiErr := h.authService.ChangeUser(c.Request.Context(), userID, service.ChangeUserInput{
		Password:    req.Password,
		NewPassword: req.NewPassword,
		Email:       req.Email,
		Question:    req.Question,
		Answer:      req.Answer,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.authService.DeleteUser(c.Request.Context(), userID, req.Password); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"digest-service/middleware"
	"digest-service/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and account management.
type AuthHandler struct {
	users *service.AuthService
}

func NewAuthHandler(users *service.AuthService) *AuthHandler {
	return &AuthHandler{users: users}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OAuthRequest struct {
	Provider       string `json:"provider" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// OAuth handles the create-on-first-signin flow for google and github
// users. The provider handshake happens upstream in the frontend.
func (h *AuthHandler) OAuth(c *gin.Context) {
	var req OAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.OAuthSignIn(c.Request.Context(), req.Provider, req.Email, req.Name, req.ProfilePicture)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me handles GET /digest-api/users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /digest-api/users/me. Soft delete by default,
// hard delete (user + stats + interactions) with ?hard=true.
func (h *AuthHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	var err error
	if c.Query("hard") == "true" {
		err = h.users.Delete(c.Request.Context(), userID)
	} else {
		err = h.users.Deactivate(c.Request.Context(), userID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

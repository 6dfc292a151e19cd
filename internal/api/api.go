package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/db"
)

// Handler carries the auth service and the store into the route handlers.
type Handler struct {
	auth           *auth.Service
	store          db.Store
	avatarMaxBytes int64
}

func NewHandler(authService *auth.Service, store db.Store, avatarMaxBytes int64) *Handler {
	if avatarMaxBytes <= 0 {
		avatarMaxBytes = 1_000_000
	}
	return &Handler{auth: authService, store: store, avatarMaxBytes: avatarMaxBytes}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/users", h.handleSignup)
	router.POST("/users/login", h.handleLogin)
	router.GET("/users/:id/avatar", h.handleGetAvatar)

	authed := router.Group("", h.requireAuth())
	authed.POST("/users/logout", h.handleLogout)
	authed.POST("/users/logoutAll", h.handleLogoutAll)
	authed.GET("/users/me", h.handleGetProfile)
	authed.PATCH("/users/me", h.handleUpdateProfile)
	authed.DELETE("/users/me", h.handleDeleteProfile)
	authed.POST("/users/me/avatar", h.handleUploadAvatar)
	authed.DELETE("/users/me/avatar", h.handleDeleteAvatar)

	authed.POST("/tasks", h.handleCreateTask)
	authed.GET("/tasks", h.handleListTasks)
	authed.GET("/tasks/:id", h.handleGetTask)
	authed.PATCH("/tasks/:id", h.handleUpdateTask)
	authed.DELETE("/tasks/:id", h.handleDeleteTask)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	session, err := h.auth.Register(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		if ve, ok := auth.IsValidationError(err); ok {
			writeValidationError(c, ve)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": session.User, "token": session.Token})
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "unable to login")
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// A generic 400 regardless of cause so that the response does not
		// reveal whether the email exists.
		writeError(c, http.StatusBadRequest, "unable to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": session.User, "token": session.Token})
}

func (h *Handler) handleLogout(c *gin.Context) {
	user, token := currentSession(c)
	if err := h.auth.Logout(c.Request.Context(), user, token); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to logout")
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) handleLogoutAll(c *gin.Context) {
	user, _ := currentSession(c)
	if err := h.auth.LogoutAll(c.Request.Context(), user); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to logout")
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) handleGetProfile(c *gin.Context) {
	user, _ := currentSession(c)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleUpdateProfile(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, _ := currentSession(c)
	if err := h.auth.UpdateProfile(c.Request.Context(), user, updates); err != nil {
		if ve, ok := auth.IsValidationError(err); ok {
			writeValidationError(c, ve)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleDeleteProfile(c *gin.Context) {
	user, _ := currentSession(c)
	if err := h.auth.Delete(c.Request.Context(), user); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func writeValidationError(c *gin.Context, ve *auth.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"fields": ve.Fields,
	})
}

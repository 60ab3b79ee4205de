package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediassist/internal/models"
	"mediassist/internal/store"
	"mediassist/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users  store.UserStore
	Secret string
	TTL    time.Duration
	Log    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users store.UserStore, secret string, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, TTL: ttl, Log: log}
}

// SignupRequest represents the request body for account registration.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup registers an account and logs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}

	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.BadRequest(c, "User with this email already exists")
			return
		}
		h.Log.Error("signup failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	h.issue(c, http.StatusCreated, "Signup successful", &user)
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			h.Log.Error("login lookup failed", zap.Error(err))
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	h.issue(c, http.StatusOK, "Login successful", user)
}

func (h *AuthHandler) issue(c *gin.Context, status int, message string, user *models.User) {
	token, err := utils.GenerateToken(user, h.Secret, h.TTL)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}
	utils.Authenticated(c, status, message, token, user.Sanitize())
}

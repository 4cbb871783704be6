package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/middleware"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	repo *repository.Repository
}

func NewUserHandler(repo *repository.Repository) *UserHandler {
	return &UserHandler{
		repo: repo,
	}
}

type RegisterRequest struct {
	Login       string `json:"login" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	IsModerator bool   `json:"is_moderator"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Login    *string `json:"login"`
	Password *string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary Register new user
// @Description Create a new dashboard account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/register [post]
func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user := &ds.Users{
		Login:       req.Login,
		IsModerator: req.IsModerator,
	}

	if err := h.repo.User.CreateUser(user, req.Password); err != nil {
		logrus.Error("Failed to register user: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to register user"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.User_ID,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT tokens
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := h.repo.User.Authenticate(req.Login, req.Password)
	if err != nil {
		logrus.Warn("Failed login attempt for ", req.Login)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	cfg := h.repo.Config()

	accessToken, err := utils.GenerateAccessToken(user, cfg.JWTSecret, cfg.JWTAccessExpire)
	if err != nil {
		logrus.Error("Failed to generate access token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user, cfg.JWTSecret, cfg.JWTRefreshExpire)
	if err != nil {
		logrus.Error("Failed to generate refresh token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if h.repo.GetRedisClient() != nil {
		err = h.repo.GetRedisClient().SaveRefreshToken(
			ctx.Request.Context(),
			user.User_ID,
			refreshToken,
			cfg.JWTRefreshExpire,
		)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}
	}

	ctx.JSON(http.StatusOK, ds.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(cfg.JWTAccessExpire),
		UserID:       user.User_ID,
		Login:        user.Login,
		IsModerator:  user.IsModerator,
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get authenticated user's profile information
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ds.Users
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.repo.User.GetUserByID(userID)
	if err != nil {
		logrus.Error("Failed to get user profile: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Update the authenticated user's login or password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if req.Login == nil && req.Password == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if req.Login != nil {
		if err := h.repo.User.UpdateLogin(userID, *req.Login); err != nil {
			logrus.Error("Failed to update login: ", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update login"})
			return
		}
	}
	if req.Password != nil {
		if err := h.repo.User.UpdatePassword(userID, *req.Password); err != nil {
			logrus.Error("Failed to update password: ", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update password"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// Logout godoc
// @Summary User logout
// @Description Invalidate the presented access token
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/logout [post]
func (h *UserHandler) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header required"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	cfg := h.repo.Config()

	if h.repo.GetRedisClient() != nil {
		err := h.repo.GetRedisClient().AddToBlacklist(
			ctx.Request.Context(),
			tokenString,
			cfg.JWTAccessExpire,
		)
		if err != nil {
			logrus.Error("Failed to add token to blacklist: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}

		if userID, exists := middleware.GetUserID(ctx); exists {
			if err := h.repo.GetRedisClient().DeleteRefreshToken(ctx.Request.Context(), userID); err != nil {
				logrus.Error("Failed to delete refresh token: ", err)
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/refresh [post]
func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	cfg := h.repo.Config()

	claims, err := utils.ValidateToken(req.RefreshToken, cfg.JWTSecret)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	if h.repo.GetRedisClient() != nil {
		storedToken, err := h.repo.GetRedisClient().GetRefreshToken(
			ctx.Request.Context(),
			claims.UserID,
		)
		if err != nil || storedToken != req.RefreshToken {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
			return
		}
	}

	user, err := h.repo.User.GetUserByID(claims.UserID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user, cfg.JWTSecret, cfg.JWTAccessExpire)
	if err != nil {
		logrus.Error("Failed to generate access token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user, cfg.JWTSecret, cfg.JWTRefreshExpire)
	if err != nil {
		logrus.Error("Failed to generate refresh token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if h.repo.GetRedisClient() != nil {
		err = h.repo.GetRedisClient().SaveRefreshToken(
			ctx.Request.Context(),
			user.User_ID,
			refreshToken,
			cfg.JWTRefreshExpire,
		)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}
	}

	ctx.JSON(http.StatusOK, ds.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(cfg.JWTAccessExpire),
		UserID:       user.User_ID,
		Login:        user.Login,
		IsModerator:  user.IsModerator,
	})
}

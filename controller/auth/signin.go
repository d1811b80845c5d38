package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"mindmap/dto"
	"mindmap/middleware"
	"mindmap/model"
	"mindmap/services"
	"mindmap/store"
)

func SignInController(router *gin.Engine, st store.DocumentStore) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, st)
	})
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshAccessToken(c, st)
	})
}

func Signin(c *gin.Context, st store.DocumentStore) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := services.GetUserByEmail(ctx, st, request.Email)
	if err != nil {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	hashedRefreshToken, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(7 * 24 * time.Hour).Unix()
	issuedAt := now.Unix()

	refreshTokenData := model.TokenResponse{
		UserID:       user.UserID,
		RefreshToken: hashedRefreshToken,
		CreatedAt:    issuedAt,
		Revoked:      false,
		ExpiresIn:    expiresAt - issuedAt,
	}

	tokenDoc := map[string]interface{}{
		"userId":       refreshTokenData.UserID,
		"refreshToken": refreshTokenData.RefreshToken,
		"createdAt":    refreshTokenData.CreatedAt,
		"revoked":      refreshTokenData.Revoked,
		"expiresIn":    refreshTokenData.ExpiresIn,
	}
	if err := st.Create(ctx, "refreshTokens", user.UserID, tokenDoc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"token": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

func RefreshAccessToken(c *gin.Context, st store.DocumentStore) {
	userID := c.MustGet("userId").(string)

	user, err := services.GetUserByID(c.Request.Context(), st, userID)
	if err != nil {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

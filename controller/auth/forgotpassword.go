package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"mindmap/dto"
	"mindmap/services"
	"mindmap/store"
)

func ForgotPasswordController(router *gin.Engine, st store.DocumentStore, security *services.SecurityService) {
	router.POST("/auth/securityquestion", func(c *gin.Context) {
		GetSecurityQuestion(c, security)
	})
	router.POST("/auth/resetpassword", func(c *gin.Context) {
		ResetPassword(c, st, security)
	})
}

func GetSecurityQuestion(c *gin.Context, security *services.SecurityService) {
	var request dto.SecurityQuestionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := security.GetSecurityQuestion(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailNotFound) {
			c.JSON(404, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to look up security question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"securityQuestion": question})
}

func ResetPassword(c *gin.Context, st store.DocumentStore, security *services.SecurityService) {
	var request dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := security.VerifyAnswer(ctx, request.Email, request.SecurityAnswer); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailNotFound):
			c.JSON(404, gin.H{"error": "Email not found"})
		case errors.Is(err, services.ErrWrongAnswer):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect security answer"})
		default:
			c.JSON(500, gin.H{"error": "Failed to verify security answer"})
		}
		return
	}

	user, err := services.GetUserByEmail(ctx, st, request.Email)
	if err != nil {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := st.Update(ctx, "Users", user.UserID, map[string]interface{}{"password": string(hashedPassword)}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

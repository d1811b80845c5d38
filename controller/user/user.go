package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindmap/dto"
	"mindmap/middleware"
	"mindmap/services"
	"mindmap/store"
)

func UserController(router *gin.Engine, st store.DocumentStore) {
	router.GET("/user", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		GetProfile(c, st)
	})
}

func GetProfile(c *gin.Context, st store.DocumentStore) {
	userID := c.MustGet("userId").(string)

	u, err := services.GetUserByID(c.Request.Context(), st, userID)
	if err != nil {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	})
}

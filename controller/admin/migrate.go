package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmap/dto"
	"mindmap/middleware"
	"mindmap/store"
)

func MigrateController(router *gin.Engine, st store.DocumentStore) {
	router.POST("/admin/migrate", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		MigrateTasks(c, st)
	})
}

// MigrateTasks backfills the owner stamp onto task documents that
// predate owner scoping. Records that already carry a userId are left
// alone.
func MigrateTasks(c *gin.Context, st store.DocumentStore) {
	var request dto.MigrateTasksRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := c.Request.Context()
	snaps, err := st.Query(ctx, "tasks")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	migrated := 0
	for _, snap := range snaps {
		if _, ok := snap.Data["userId"]; ok {
			continue
		}
		if err := st.Update(ctx, "tasks", snap.ID, map[string]interface{}{"userId": request.UserID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed", "migrated": migrated})
			return
		}
		migrated++
	}

	c.JSON(http.StatusOK, gin.H{"message": "Migration completed successfully", "migrated": migrated})
}

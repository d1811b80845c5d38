package task

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmap/dto"
	"mindmap/middleware"
	"mindmap/model"
	"mindmap/services"
	"mindmap/store"
)

func TaskController(router *gin.Engine, tasks *services.TaskService, reminders *services.ReminderService, syncsvc *services.SyncService, network *services.NetworkService) {
	authed := router.Group("/", middleware.AccessTokenMiddleware())
	authed.POST("/task", func(c *gin.Context) {
		CreateTask(c, tasks, reminders)
	})
	authed.GET("/tasks", func(c *gin.Context) {
		ListTasks(c, tasks)
	})
	authed.PATCH("/task/:id", func(c *gin.Context) {
		UpdateTask(c, tasks)
	})
	authed.DELETE("/task/:id", func(c *gin.Context) {
		DeleteTask(c, tasks)
	})
	authed.POST("/task/sync", func(c *gin.Context) {
		SyncTasks(c, syncsvc)
	})

	// connectivity state for the offline banner; no auth needed
	router.GET("/network", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"online": network.IsOnline()})
	})
}

func CreateTask(c *gin.Context, tasks *services.TaskService, reminders *services.ReminderService) {
	userID := c.MustGet("userId").(string)
	var request dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := services.WithUserID(c.Request.Context(), userID)
	input := services.TaskInput{
		Title:       request.Title,
		Description: request.Description,
		Priority:    model.Priority(request.Priority),
		Category:    model.Category(request.Category),
		DueDate:     request.DueDate,
	}

	taskID, err := tasks.AddTask(ctx, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	// reminder failures stay out of the response; the task itself is in
	if err := reminders.ScheduleReminder(ctx, request.DueDate, request.Title); err != nil {
		log.Printf("task: scheduling reminder for %s failed: %v", taskID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskID":  taskID,
	})
}

func ListTasks(c *gin.Context, tasks *services.TaskService) {
	userID := c.MustGet("userId").(string)
	ctx := services.WithUserID(c.Request.Context(), userID)

	list, err := tasks.GetTasks(ctx)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

func UpdateTask(c *gin.Context, tasks *services.TaskService) {
	userID := c.MustGet("userId").(string)
	var request dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	upd := services.TaskUpdate{
		Title:        request.Title,
		Description:  request.Description,
		Completed:    request.Completed,
		DueDate:      request.DueDate,
		ClearDueDate: request.ClearDueDate,
	}
	if request.Priority != nil {
		p := model.Priority(*request.Priority)
		upd.Priority = &p
	}

	ctx := services.WithUserID(c.Request.Context(), userID)
	if err := tasks.UpdateTask(ctx, c.Param("id"), upd); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

func DeleteTask(c *gin.Context, tasks *services.TaskService) {
	userID := c.MustGet("userId").(string)
	ctx := services.WithUserID(c.Request.Context(), userID)

	if err := tasks.DeleteTask(ctx, c.Param("id")); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func SyncTasks(c *gin.Context, syncsvc *services.SyncService) {
	userID := c.MustGet("userId").(string)
	ctx := services.WithUserID(c.Request.Context(), userID)

	if err := syncsvc.SyncPendingTasks(ctx); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pending tasks synced"})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrNoFields):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

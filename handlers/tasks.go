package handlers

import (
	"net/http"

	"medsync/models"
	"medsync/services/tasks"
	"medsync/utils"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes the task list and its reminder side effects.
type TaskHandler struct {
	Tasks *tasks.TaskService
}

func NewTaskHandler(svc *tasks.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: svc}
}

func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.Tasks.List()})
}

func (h *TaskHandler) AddTaskHandler(c *gin.Context) {
	var body struct {
		Description string `json:"description" binding:"required"`
		StartTime   string `json:"startTime" binding:"required"`
		EndTime     string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid task payload", err.Error())
		return
	}

	task, err := h.Tasks.Add(c.Request.Context(), body.Description, body.StartTime, body.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to add task", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) RemoveTaskHandler(c *gin.Context) {
	taskID := c.Param("taskID")
	if err := h.Tasks.Remove(c.Request.Context(), taskID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to remove task", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

// SyncAppointmentsHandler rebuilds the task list from upcoming appointments.
func (h *TaskHandler) SyncAppointmentsHandler(c *gin.Context) {
	var body struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointments payload", err.Error())
		return
	}

	if err := h.Tasks.DeriveFromAppointments(c.Request.Context(), body.Appointments); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to derive tasks", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": h.Tasks.List()})
}

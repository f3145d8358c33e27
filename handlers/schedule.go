package handlers

import (
	"errors"
	"net/http"

	"medsync/models"
	"medsync/services/schedule"
	"medsync/services/session"
	"medsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the schedule operations the mobile screens drove.
type ScheduleHandler struct {
	Sync     schedule.Synchronizer
	Builder  *schedule.ShiftBuilder
	Sessions *session.Manager
}

func NewScheduleHandler(sync schedule.Synchronizer, builder *schedule.ShiftBuilder, sessions *session.Manager) *ScheduleHandler {
	return &ScheduleHandler{Sync: sync, Builder: builder, Sessions: sessions}
}

// professionalID resolves the identity for the request: an explicit query
// parameter wins, otherwise the stored session.
func (h *ScheduleHandler) professionalID(c *gin.Context) (string, bool) {
	if id := c.Query("professionalId"); id != "" {
		return id, true
	}
	id, err := h.Sessions.ProfessionalID(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "No professional identity", err.Error())
		return "", false
	}
	return id, true
}

// GetScheduleHandler returns the synchronized schedule with its version,
// lifecycle state, and any overlapping-shift conflicts.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	snapshot, version := h.Sync.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"availability": snapshot,
		"version":      version,
		"state":        h.Sync.State(),
		"conflicts":    snapshot.Conflicts(),
	})
}

// RefreshScheduleHandler re-fetches the canonical schedule from the remote
// service.
func (h *ScheduleHandler) RefreshScheduleHandler(c *gin.Context) {
	professionalID, ok := h.professionalID(c)
	if !ok {
		return
	}

	fetched, err := h.Sync.Fetch(c.Request.Context(), professionalID)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": fetched})
}

// GetScheduleForDateHandler returns one day's slots straight from the
// remote service.
func (h *ScheduleHandler) GetScheduleForDateHandler(c *gin.Context) {
	professionalID, ok := h.professionalID(c)
	if !ok {
		return
	}
	date := c.Param("date")

	slots, err := h.Sync.FetchForDate(c.Request.Context(), professionalID, date)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch schedule for date", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// AddShiftHandler validates a shift form and accumulates the expanded
// candidate shifts.
func (h *ScheduleHandler) AddShiftHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input schedule.ShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	created, err := h.Builder.Add(input)
	if err != nil {
		var vErr *schedule.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, "Please fill out all fields", vErr.Error())
			return
		}
		logger.Error("Failed to add shift", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to add shift", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift added",
		"shifts":  created,
		"pending": len(h.Builder.Pending()),
	})
}

// GetPendingShiftsHandler lists the unsaved candidate shifts.
func (h *ScheduleHandler) GetPendingShiftsHandler(c *gin.Context) {
	pending := h.Builder.Pending()
	c.JSON(http.StatusOK, gin.H{
		"shifts":    pending,
		"conflicts": h.Builder.Availability().Conflicts(),
	})
}

// ClearPendingShiftsHandler discards the unsaved candidates.
func (h *ScheduleHandler) ClearPendingShiftsHandler(c *gin.Context) {
	h.Builder.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Pending shifts cleared"})
}

// SaveScheduleHandler submits the pending candidates. Candidates survive a
// failed submission so the user can retry without re-entering them.
func (h *ScheduleHandler) SaveScheduleHandler(c *gin.Context) {
	professionalID, ok := h.professionalID(c)
	if !ok {
		return
	}

	pending := h.Builder.Pending()
	if len(pending) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Please add some shifts before saving", "no pending shifts")
		return
	}

	if err := h.Sync.Submit(c.Request.Context(), professionalID, pending); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Error saving schedule", err.Error())
		return
	}

	h.Builder.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Your schedule has been saved successfully"})
}

// SaveRecurringHandler bulk-creates the pending candidates as recurring
// availability.
func (h *ScheduleHandler) SaveRecurringHandler(c *gin.Context) {
	professionalID, ok := h.professionalID(c)
	if !ok {
		return
	}

	var body struct {
		Recurrence string `json:"recurrence" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing recurrence", err.Error())
		return
	}
	policy, err := models.ParseRecurrencePolicy(body.Recurrence)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid recurrence", err.Error())
		return
	}

	pending := h.Builder.Pending()
	if len(pending) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Please add some shifts before saving", "no pending shifts")
		return
	}

	if err := h.Sync.SubmitRecurring(c.Request.Context(), professionalID, pending, policy); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Error saving recurring slots", err.Error())
		return
	}

	h.Builder.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Recurring slots created"})
}

// UpdateSlotHandler applies a local-only optimistic slot mutation.
func (h *ScheduleHandler) UpdateSlotHandler(c *gin.Context) {
	slotID := c.Param("slotID")
	if slotID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing slot ID in path", "")
		return
	}

	var update models.SlotUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot update payload", err.Error())
		return
	}

	if err := h.Sync.UpdateSlot(c.Request.Context(), slotID, update); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot updated locally; save the schedule to persist"})
}

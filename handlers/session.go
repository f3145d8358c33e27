package handlers

import (
	"errors"
	"net/http"

	"medsync/services/session"
	"medsync/storage"
	"medsync/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler manages the signed-in professional's identity and device.
type SessionHandler struct {
	Sessions *session.Manager
	Store    storage.KVStore
}

func NewSessionHandler(sessions *session.Manager, store storage.KVStore) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Store: store}
}

func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	s, err := h.Sessions.Current(c.Request.Context())
	if errors.Is(err, session.ErrNoSession) {
		utils.JSONError(c, http.StatusNotFound, "Not signed in", "")
		return
	}
	if errors.Is(err, session.ErrSessionExpired) {
		utils.JSONError(c, http.StatusUnauthorized, "Session expired", "sign in again")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read session", err.Error())
		return
	}

	// Never echo the raw token back.
	c.JSON(http.StatusOK, gin.H{
		"professionalId": s.ProfessionalID,
		"email":          s.Email,
		"savedAt":        s.SavedAt,
	})
}

func (h *SessionHandler) SaveSessionHandler(c *gin.Context) {
	var body session.Session
	if err := c.ShouldBindJSON(&body); err != nil || body.ProfessionalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid session payload", "professionalId is required")
		return
	}

	if err := h.Sessions.Save(c.Request.Context(), body); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session saved"})
}

func (h *SessionHandler) ClearSessionHandler(c *gin.Context) {
	if err := h.Sessions.Clear(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RegisterDeviceHandler stores the device's FCM token for reminder pushes.
func (h *SessionHandler) RegisterDeviceHandler(c *gin.Context) {
	var body struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing FCM token", err.Error())
		return
	}

	if err := h.Store.Set(c.Request.Context(), utils.StoreKeyFCMToken, body.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register device", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

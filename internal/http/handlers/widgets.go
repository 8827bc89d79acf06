package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/models"
)

func (h *Handler) WidgetsGet(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	widgets, err := h.Store.Widgets(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load dashboard", err.Error())
		return
	}
	if widgets == nil {
		widgets = []models.WidgetConfig{}
	}
	c.JSON(http.StatusOK, gin.H{"items": widgets})
}

// WidgetsPut replaces the caller's whole dashboard layout. Positions are
// re-numbered in submission order so removals and drags keep a dense
// ordering.
func (h *Handler) WidgetsPut(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var widgets []models.WidgetConfig
	if err := c.ShouldBindJSON(&widgets); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	for i := range widgets {
		widgets[i].Position = i
	}

	if err := h.Store.SaveWidgets(c.Request.Context(), user.ID, widgets); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": widgets})
}

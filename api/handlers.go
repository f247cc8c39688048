package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/chxlky/trello-bookmark/internal/popup"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookmarkLister lists saved bookmarks, newest first.
type BookmarkLister interface {
	Recent(ctx context.Context, limit int) ([]models.Bookmark, error)
}

type Handler struct {
	Popup     *popup.Controller
	Bookmarks BookmarkLister
}

type inputRequest struct {
	Field popup.Field `json:"field" binding:"required"`
	Value string      `json:"value"`
}

func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("/health", h.HealthCheckHandler)
	group.GET("/state", h.StateHandler)
	group.POST("/input", h.InputHandler)
	group.POST("/settings", h.SaveSettingsHandler)
	group.POST("/bookmark", h.SaveBookmarkHandler)
	group.POST("/test-connection", h.TestConnectionHandler)
	group.POST("/debug/clear", h.ClearDebugHandler)
	group.GET("/bookmarks", h.ListBookmarksHandler)
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Popup.State())
}

func (h *Handler) InputHandler(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}
	if err := h.Popup.SetField(req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Popup.State())
}

func (h *Handler) SaveSettingsHandler(c *gin.Context) {
	h.respond(c, h.Popup.SaveSettings(c.Request.Context()))
}

func (h *Handler) SaveBookmarkHandler(c *gin.Context) {
	h.respond(c, h.Popup.SaveBookmark(c.Request.Context()))
}

func (h *Handler) TestConnectionHandler(c *gin.Context) {
	h.respond(c, h.Popup.TestConnection(c.Request.Context()))
}

func (h *Handler) ClearDebugHandler(c *gin.Context) {
	h.Popup.ClearDebugLog()
	c.JSON(http.StatusOK, h.Popup.State())
}

func (h *Handler) ListBookmarksHandler(c *gin.Context) {
	if h.Bookmarks == nil {
		c.JSON(http.StatusOK, []models.Bookmark{})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	bookmarks, err := h.Bookmarks.Recent(c.Request.Context(), limit)
	if err != nil {
		zap.L().Error("Failed to list bookmarks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookmarks"})
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// respond always returns the popup state; the status code tells the shim
// which kind of failure, if any, the action hit.
func (h *Handler) respond(c *gin.Context, err error) {
	code := http.StatusOK
	if err != nil {
		kind := popup.KindOf(err)
		zap.L().Debug("Popup action failed", zap.String("kind", string(kind)), zap.Error(err))
		switch kind {
		case popup.KindValidation:
			code = http.StatusUnprocessableEntity
		case popup.KindTab:
			code = http.StatusConflict
		case popup.KindNetwork, popup.KindAPI, popup.KindParse:
			code = http.StatusBadGateway
		case popup.KindCanceled:
			// the client went away; nobody reads this response
			code = http.StatusRequestTimeout
		default:
			code = http.StatusInternalServerError
		}
	}
	c.JSON(code, h.Popup.State())
}

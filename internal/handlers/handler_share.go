package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/dto"
	"github.com/loooooooooogp/Account/internal/middleware"
)

// shareHandler handles share-link HTTP requests.
type shareHandler struct {
	sharingService portssvc.SharingSvcFacade
}

func newShareHandler(ss portssvc.SharingSvcFacade) *shareHandler {
	return &shareHandler{sharingService: ss}
}

// registerShareRoutes registers routes related to account sharing.
func registerShareRoutes(rg *gin.RouterGroup, sharingService portssvc.SharingSvcFacade) {
	h := newShareHandler(sharingService)

	shares := rg.Group("/shares")
	{
		shares.POST("", h.grantAccess)
		shares.DELETE("/:id", h.revokeAccess)
		shares.GET("/given", h.listGiven)
		shares.GET("/received", h.listReceived)
	}
}

// grantAccess shares one of the caller's accounts with another user.
func (h *shareHandler) grantAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GrantAccess", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	link, err := h.sharingService.GrantAccess(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to share account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreateShareLinkResponse(link))
}

// revokeAccess deletes a share link the caller created.
func (h *shareHandler) revokeAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	linkID := c.Param("id")
	if err := h.sharingService.RevokeAccess(c.Request.Context(), userID, linkID); err != nil {
		handleServiceError(c, logger, err, "Failed to revoke share")
		return
	}

	c.Status(http.StatusNoContent)
}

// listGiven returns the links the caller granted on their accounts.
func (h *shareHandler) listGiven(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.sharingService.ListLinksOwnedBy(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list shares")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": dto.ToListShareLinkResponse(views)})
}

// listReceived returns the links granted to the caller.
func (h *shareHandler) listReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.sharingService.ListLinksGrantedTo(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list shares")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": dto.ToListShareLinkResponse(views)})
}

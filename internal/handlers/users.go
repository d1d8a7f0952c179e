package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers is admin-only. The response DTO never carries the password
// digest, which keeps the redaction guarantee on this path.
func (h HandlerSet) ListUsers(c *gin.Context) {
	page, err := h.users.ListPage(c.Request.Context(), h.pageParam(c), h.perPageParam(c))
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	items := make([]userResponse, 0, len(page.Items))
	for _, user := range page.Items {
		items = append(items, toUserResponse(user.Redacted()))
	}
	c.JSON(http.StatusOK, envelope(page, items))
}

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/api/internal/ids"
	"inkwell/api/internal/middleware"
	"inkwell/api/internal/models"
	"inkwell/api/internal/repository"
)

type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(comment models.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		UserName:  comment.UserName,
		UserImage: comment.UserImage,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func (h HandlerSet) ListPostComments(c *gin.Context) {
	postID := c.Param("id")
	if _, err := h.posts.GetByID(c.Request.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("load post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	page, err := h.comments.ListForPost(c.Request.Context(), postID, h.pageParam(c), h.cfg.Paging.PageSize)
	if err != nil {
		h.log.Error().Err(err).Msg("list post comments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	items := make([]commentResponse, 0, len(page.Items))
	for _, comment := range page.Items {
		items = append(items, toCommentResponse(comment))
	}
	c.JSON(http.StatusOK, envelope(page, items))
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content cannot be empty"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("load post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	author, _ := middleware.CurrentUser(c)
	comment := models.Comment{
		ID:        ids.New(),
		PostID:    post.ID,
		UserID:    author.ID,
		UserName:  author.Name,
		UserImage: author.ImageURL,
		Content:   content,
	}

	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		h.log.Error().Err(err).Msg("create comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": toCommentResponse(comment)})
}

func (h HandlerSet) ListComments(c *gin.Context) {
	page, err := h.comments.ListPage(c.Request.Context(), h.pageParam(c), h.perPageParam(c))
	if err != nil {
		h.log.Error().Err(err).Msg("list comments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	items := make([]commentResponse, 0, len(page.Items))
	for _, comment := range page.Items {
		items = append(items, toCommentResponse(comment))
	}
	c.JSON(http.StatusOK, envelope(page, items))
}

func (h HandlerSet) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("delete comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

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

type postRequest struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	Keywords string `json:"keywords"`
}

type postResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Keywords  string    `json:"keywords"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(post models.Post) postResponse {
	keywords := ""
	if post.Keywords != nil {
		keywords = *post.Keywords
	}
	return postResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		UserName:  post.UserName,
		UserImage: post.UserImage,
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Keywords:  keywords,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func (r postRequest) validate() (title, summary, content string, keywords *string, ok bool) {
	title = strings.TrimSpace(r.Title)
	summary = strings.TrimSpace(r.Summary)
	content = strings.TrimSpace(r.Content)
	if kw := strings.TrimSpace(r.Keywords); kw != "" {
		keywords = &kw
	}
	ok = title != "" && summary != "" && content != ""
	return
}

func (h HandlerSet) ListPosts(c *gin.Context) {
	page, err := h.posts.ListPage(c.Request.Context(), h.pageParam(c), h.cfg.Paging.PageSize)
	if err != nil {
		h.log.Error().Err(err).Msg("list posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	items := make([]postResponse, 0, len(page.Items))
	for _, post := range page.Items {
		items = append(items, toPostResponse(post))
	}
	c.JSON(http.StatusOK, envelope(page, items))
}

func (h HandlerSet) GetPost(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("get post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(post)})
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, summary, content, keywords, ok := req.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, summary and content cannot be empty"})
		return
	}

	author, _ := middleware.CurrentUser(c)
	post := models.Post{
		ID:        ids.New(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserImage: author.ImageURL,
		Title:     title,
		Summary:   summary,
		Content:   content,
		Keywords:  keywords,
	}

	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		h.log.Error().Err(err).Msg("create post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	created, err := h.posts.GetByID(c.Request.Context(), post.ID)
	if err != nil {
		created = post
	}
	c.JSON(http.StatusCreated, gin.H{"post": toPostResponse(created)})
}

func (h HandlerSet) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, summary, content, keywords, ok := req.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, summary and content cannot be empty"})
		return
	}

	post := models.Post{
		ID:       c.Param("id"),
		Title:    title,
		Summary:  summary,
		Content:  content,
		Keywords: keywords,
	}

	if err := h.posts.Update(c.Request.Context(), post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("update post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	updated, err := h.posts.GetByID(c.Request.Context(), post.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": post.ID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(updated)})
}

func (h HandlerSet) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.posts.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		h.log.Error().Err(err).Msg("delete post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h HandlerSet) ListKeywords(c *gin.Context) {
	keywords, err := h.keywords.All(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list keywords failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

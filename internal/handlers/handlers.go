package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"inkwell/api/internal/config"
	"inkwell/api/internal/middleware"
	"inkwell/api/internal/repository"
	"inkwell/api/internal/service"
	"inkwell/api/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	db       *pgxpool.Pool
	cache    *redis.Client
	store    *storage.ObjectStore
	users    *repository.UserRepository
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	sessions *service.SessionService
	accounts *service.AccountService
	keywords *service.KeywordService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	executor := repository.NewExecutor(db)
	userRepo := repository.NewUserRepository(db, executor)
	postRepo := repository.NewPostRepository(db, executor)
	commentRepo := repository.NewCommentRepository(db, executor)

	throttle := service.NewLoginThrottle(cache, cfg.Security.LoginAttempts, cfg.Security.LoginWindow)
	sessions := service.NewSessionService(userRepo, cfg.Security.SessionSecret, cfg.Security.SessionTTL, log)
	accounts := service.NewAccountService(userRepo, throttle, log)
	keywords := service.NewKeywordService(postRepo)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		db:       db,
		cache:    cache,
		store:    store,
		users:    userRepo,
		posts:    postRepo,
		comments: commentRepo,
		sessions: sessions,
		accounts: accounts,
		keywords: keywords,
	}
}

// Mount wires all routes. The session middleware runs on every request;
// gates are applied per route group.
func (h HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.Session(h.cfg.Security.CookieName, h.sessions))
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireUser(), h.Me)

		v1.GET("/posts", h.ListPosts)
		v1.GET("/posts/:id", h.GetPost)
		v1.GET("/posts/:id/comments", h.ListPostComments)
		v1.GET("/keywords", h.ListKeywords)

		v1.POST("/posts/:id/comments", middleware.RequireUser(), h.CreateComment)

		admin := v1.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("/posts", h.CreatePost)
		admin.PUT("/posts/:id", h.UpdatePost)
		admin.DELETE("/posts/:id", h.DeletePost)
		admin.GET("/comments", h.ListComments)
		admin.DELETE("/comments/:id", h.DeleteComment)
		admin.GET("/users", h.ListUsers)
		admin.POST("/media", h.UploadMedia)
	}
}

// envelope shapes every paged listing response the same way.
func envelope[T any](p repository.Page[T], items any) gin.H {
	return gin.H{
		"items":       items,
		"page":        p.Page,
		"pageSize":    p.PageSize,
		"totalCount":  p.TotalCount,
		"totalPages":  p.TotalPages,
		"hasPrevious": p.HasPrevious,
		"hasNext":     p.HasNext,
	}
}

func (h HandlerSet) pageParam(c *gin.Context) int {
	return repository.ParsePage(c.Query("page"))
}

// perPageParam honors an admin-only page size override, capped to keep
// result sets bounded.
func (h HandlerSet) perPageParam(c *gin.Context) int {
	size := h.cfg.Paging.PageSize
	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v >= 1 {
			size = v
		}
	}
	if size > h.cfg.Paging.AdminMaxSize {
		size = h.cfg.Paging.AdminMaxSize
	}
	return size
}

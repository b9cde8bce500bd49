package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/service/wall"
	"github.com/IlianBuh/Wall-service/internal/transport/validate"
	"github.com/gin-gonic/gin"
)

type WallService interface {
	Feed() wall.Feed
	SubmitPost(ctx context.Context, author string, message string) (models.Post, error)
	Status(ctx context.Context) models.Status
}

type handler struct {
	srvc    WallService
	timeout time.Duration
}

type postBody struct {
	Id        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}

type submitRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Register registers wall routes on router
func Register(router gin.IRouter, wallService WallService, timeout time.Duration) {
	h := &handler{srvc: wallService, timeout: timeout}

	router.GET("/health", h.health)

	api := router.Group("/api")
	api.GET("/posts", h.listPosts)
	api.POST("/posts", h.submitPost)
	api.GET("/status", h.status)
}

// Logger writes one line per request to log
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

func (h *handler) listPosts(c *gin.Context) {
	feed := h.srvc.Feed()

	posts := make([]postBody, len(feed.Posts))
	for i := range feed.Posts {
		posts[i] = toBody(feed.Posts[i])
	}

	resp := gin.H{
		"state": feed.State.String(),
		"posts": posts,
	}
	if feed.Error != "" {
		resp["error"] = feed.Error
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) submitPost(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validate.Author(req.Author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Message(req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	post, err := h.srvc.SubmitPost(ctx, req.Author, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, wall.ErrStorage):
			c.JSON(http.StatusCreated, gin.H{"post": toBody(post), "warning": wall.ErrStorage.Error()})
		case errors.Is(err, wall.ErrEmptyMessage), errors.Is(err, wall.ErrEmptyAuthor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, wall.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": wall.ErrNotReady.Error()})
		case errors.Is(err, wall.ErrBackend):
			c.JSON(http.StatusBadGateway, gin.H{"error": wall.ErrBackend.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": toBody(post)})
}

func (h *handler) status(c *gin.Context) {
	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	c.JSON(http.StatusOK, h.srvc.Status(ctx))
}

func (h *handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, h.timeout)
}

func toBody(p models.Post) postBody {
	return postBody{
		Id:        p.Id,
		Author:    p.Author,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		Timestamp: p.Timestamp,
	}
}

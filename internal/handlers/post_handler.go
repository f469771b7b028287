package handlers

import (
	"net/http"
	"strconv"

	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository     repositories.PostRepository
	reactionRepository repositories.PostReactionRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, reactionRepo repositories.PostReactionRepository) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		reactionRepository: reactionRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, authRequired, authOptional echo.MiddlewareFunc) {
	g.GET("", h.GetPosts, authOptional)
	g.POST("", h.CreatePost, authRequired)
	g.PUT("/:id", h.UpdatePost, authRequired)
	g.DELETE("/:id", h.DeletePost, authRequired)
	g.POST("/:id/like", h.LikePost, authRequired)
	g.POST("/:id/dislike", h.DislikePost, authRequired)
}

// GetPosts retrieves a page of posts with stats. Anonymous callers get
// is_liked/is_disliked defaulted to false.
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, limit := pagination(c)
	userID, authed := currentUserID(c)

	posts, err := h.postRepository.GetPosts(skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]*models.PostWithStats, 0, len(posts))
	for i := range posts {
		stats, err := h.buildPostStats(&posts[i], userID, authed)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		result = append(result, stats)
	}

	return c.JSON(http.StatusOK, result)
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := c.Get("userID").(uint)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: userID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Reload so the response carries the author
	created, err := h.postRepository.GetPostByID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, created)
}

// UpdatePost applies a partial patch to a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := c.Get("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller; reactions and comments
// go with it.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.Get("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// LikePost records the caller's like on a post, removing any dislike
func (h *PostHandler) LikePost(c echo.Context) error {
	return h.react(c, h.reactionRepository.Like)
}

// DislikePost records the caller's dislike on a post, removing any like
func (h *PostHandler) DislikePost(c echo.Context) error {
	return h.react(c, h.reactionRepository.Dislike)
}

func (h *PostHandler) react(c echo.Context, apply func(postID, userID uint) error) error {
	userID := c.Get("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := apply(postID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	stats, err := h.buildPostStats(post, userID, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *PostHandler) buildPostStats(post *models.Post, userID uint, authed bool) (*models.PostWithStats, error) {
	likes, err := h.reactionRepository.GetLikesCount(post.ID)
	if err != nil {
		return nil, err
	}
	dislikes, err := h.reactionRepository.GetDislikesCount(post.ID)
	if err != nil {
		return nil, err
	}
	comments, err := h.postRepository.GetCommentsCountByPostID(post.ID)
	if err != nil {
		return nil, err
	}

	stats := &models.PostWithStats{
		Post:          *post,
		LikesCount:    likes,
		DislikesCount: dislikes,
		CommentsCount: comments,
	}
	if authed {
		if stats.IsLiked, err = h.reactionRepository.HasUserLiked(post.ID, userID); err != nil {
			return nil, err
		}
		if stats.IsDisliked, err = h.reactionRepository.HasUserDisliked(post.ID, userID); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// currentUserID reports the caller's identity when the optional auth
// middleware resolved one.
func currentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

func pagination(c echo.Context) (skip, limit int) {
	skip, limit = 0, 100
	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	return skip, limit
}

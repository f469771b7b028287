package handlers

import (
	"net/http"

	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	postRepository     repositories.PostRepository
	reactionRepository repositories.CommentReactionRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, reactionRepo repositories.CommentReactionRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		postRepository:     postRepo,
		reactionRepository: reactionRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, authRequired echo.MiddlewareFunc) {
	g.GET("/post/:post_id", h.GetCommentsByPostID, authRequired)
	g.POST("/post/:post_id", h.CreateComment, authRequired)
	g.PUT("/:id", h.UpdateComment, authRequired)
	g.DELETE("/:id", h.DeleteComment, authRequired)
	g.POST("/:id/like", h.LikeComment, authRequired)
	g.POST("/:id/dislike", h.DislikeComment, authRequired)
}

// GetCommentsByPostID retrieves a page of a post's top-level comments
// with stats. Replies are reachable through replies_count, not embedded.
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	userID := c.Get("userID").(uint)
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	comments, err := h.commentRepository.GetTopLevelCommentsByPostID(postID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]*models.CommentWithStats, 0, len(comments))
	for i := range comments {
		stats, err := h.buildCommentStats(&comments[i], userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		result = append(result, stats)
	}

	return c.JSON(http.StatusOK, result)
}

// CreateComment creates a comment on a post, optionally as a reply to a
// parent comment on the same post.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := c.Get("userID").(uint)
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.ParentID != nil {
		parent, err := h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  req.Content,
		PostID:   postID,
		AuthorID: userID,
		ParentID: req.ParentID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Reload so the response carries the author
	created, err := h.commentRepository.GetCommentByID(comment.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, created)
}

// UpdateComment applies a partial patch to a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID := c.Get("userID").(uint)
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}

	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment owned by the caller together with its
// reply subtree and reactions.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := c.Get("userID").(uint)
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// LikeComment records the caller's like on a comment, removing any dislike
func (h *CommentHandler) LikeComment(c echo.Context) error {
	return h.react(c, h.reactionRepository.Like)
}

// DislikeComment records the caller's dislike on a comment, removing any like
func (h *CommentHandler) DislikeComment(c echo.Context) error {
	return h.react(c, h.reactionRepository.Dislike)
}

func (h *CommentHandler) react(c echo.Context, apply func(commentID, userID uint) error) error {
	userID := c.Get("userID").(uint)
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := apply(commentID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	stats, err := h.buildCommentStats(comment, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *CommentHandler) buildCommentStats(comment *models.Comment, userID uint) (*models.CommentWithStats, error) {
	likes, err := h.reactionRepository.GetLikesCount(comment.ID)
	if err != nil {
		return nil, err
	}
	dislikes, err := h.reactionRepository.GetDislikesCount(comment.ID)
	if err != nil {
		return nil, err
	}
	replies, err := h.commentRepository.GetRepliesCount(comment.ID)
	if err != nil {
		return nil, err
	}
	isLiked, err := h.reactionRepository.HasUserLiked(comment.ID, userID)
	if err != nil {
		return nil, err
	}
	isDisliked, err := h.reactionRepository.HasUserDisliked(comment.ID, userID)
	if err != nil {
		return nil, err
	}

	return &models.CommentWithStats{
		Comment:       *comment,
		LikesCount:    likes,
		DislikesCount: dislikes,
		RepliesCount:  replies,
		IsLiked:       isLiked,
		IsDisliked:    isDisliked,
	}, nil
}

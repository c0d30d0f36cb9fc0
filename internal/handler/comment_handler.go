package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"participation-api/internal/domain"
	"participation-api/internal/dto"
	"participation-api/internal/response"
	"participation-api/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment creates a comment on a commentable resource
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments lists the visible comments of a commentable resource,
// sorted by the requested ordering key
func (h *CommentHandler) ListComments(c *gin.Context) {
	commentableType, ok := domain.ParseResourceType(c.Query("commentableType"))
	if !ok {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid commentable type")
		return
	}

	commentableID, err := uuid.Parse(c.Query("commentableId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid commentable ID")
		return
	}

	ref := domain.ResourceRef{Type: commentableType, ID: commentableID}
	comments, err := h.commentService.ListComments(c.Request.Context(), ref, c.Query("order"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// VoteComment registers an up or down vote on a comment. A repeated vote
// by the same user replaces the previous one.
func (h *CommentHandler) VoteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	var req dto.VoteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.commentService.VoteComment(c.Request.Context(), userID, commentID, req.Weight); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"commentId": commentID, "weight": req.Weight})
}

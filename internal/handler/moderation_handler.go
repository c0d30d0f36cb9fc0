package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"participation-api/internal/dto"
	"participation-api/internal/response"
	"participation-api/internal/service"
)

type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
	}
}

// Report registers a report against a comment or proposal
func (h *ModerationHandler) Report(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	moderation, err := h.moderationService.Report(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moderation)
}

// Hide hides the content behind a moderation record
func (h *ModerationHandler) Hide(c *gin.Context) {
	moderationID, err := uuid.Parse(c.Param("moderationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid moderation ID")
		return
	}

	moderation, err := h.moderationService.Hide(c.Request.Context(), moderationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moderation)
}

// Unhide clears the local hide mark on a moderation record
func (h *ModerationHandler) Unhide(c *gin.Context) {
	moderationID, err := uuid.Parse(c.Param("moderationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid moderation ID")
		return
	}

	moderation, err := h.moderationService.Unhide(c.Request.Context(), moderationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moderation)
}

// SetUpstreamState records the upstream authority's decision
func (h *ModerationHandler) SetUpstreamState(c *gin.Context) {
	moderationID, err := uuid.Parse(c.Param("moderationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid moderation ID")
		return
	}

	var req dto.UpstreamStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	moderation, err := h.moderationService.SetUpstreamState(c.Request.Context(), moderationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moderation)
}

// ListPending lists moderation records awaiting an upstream decision
func (h *ModerationHandler) ListPending(c *gin.Context) {
	moderations, err := h.moderationService.ListPending(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, moderations)
}

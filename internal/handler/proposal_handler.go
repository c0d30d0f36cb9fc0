package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"participation-api/internal/dto"
	"participation-api/internal/response"
	"participation-api/internal/service"
)

type ProposalHandler struct {
	proposalService service.ProposalService
}

func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

// CreateProposal creates a proposal in a participatory space
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, proposal)
}

// ListProposals lists the visible proposals of a participatory space
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Param("spaceId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid space ID")
		return
	}

	proposals, err := h.proposalService.ListProposals(c.Request.Context(), spaceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, proposals)
}

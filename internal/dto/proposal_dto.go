package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateProposalRequest is the form for creating a new proposal
type CreateProposalRequest struct {
	ParticipatorySpaceID uuid.UUID `json:"participatorySpaceId" binding:"required"`
	Title                string    `json:"title" binding:"required,min=1,max=255"`
	Body                 string    `json:"body" binding:"required,min=1"`
}

// Validate checks the form beyond what request binding covers
func (r *CreateProposalRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if r.Body == "" {
		return fmt.Errorf("body must not be empty")
	}
	if r.ParticipatorySpaceID == uuid.Nil {
		return fmt.Errorf("participatorySpaceId must be set")
	}
	return nil
}

// ProposalResponse represents a proposal in listings
type ProposalResponse struct {
	ProposalID           uuid.UUID `json:"proposalId"`
	ParticipatorySpaceID uuid.UUID `json:"participatorySpaceId"`
	AuthorID             uuid.UUID `json:"authorId"`
	Title                string    `json:"title"`
	Body                 string    `json:"body"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

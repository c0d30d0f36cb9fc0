package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"participation-api/internal/domain"
)

// CreateCommentRequest is the form for creating a new comment
type CreateCommentRequest struct {
	CommentableType string     `json:"commentableType" binding:"required"`
	CommentableID   uuid.UUID  `json:"commentableId" binding:"required"`
	Body            string     `json:"body" binding:"required,min=1"`
	Alignment       int        `json:"alignment"`
	GroupID         *uuid.UUID `json:"groupId,omitempty"`
}

// Validate checks the form beyond what request binding covers. The
// service rejects the command without side effects when this fails.
func (r *CreateCommentRequest) Validate() error {
	if r.Body == "" {
		return fmt.Errorf("body must not be empty")
	}
	if r.Alignment < domain.AlignmentAgainst || r.Alignment > domain.AlignmentInFavor {
		return fmt.Errorf("alignment must be -1, 0 or 1, got %d", r.Alignment)
	}
	if _, ok := domain.ParseResourceType(r.CommentableType); !ok {
		return fmt.Errorf("unknown commentable type %q", r.CommentableType)
	}
	if r.CommentableID == uuid.Nil {
		return fmt.Errorf("commentableId must be set")
	}
	return nil
}

// Ref returns the commentable reference the form targets, with the type
// in its canonical form
func (r *CreateCommentRequest) Ref() domain.ResourceRef {
	t, _ := domain.ParseResourceType(r.CommentableType)
	return domain.ResourceRef{
		Type: t,
		ID:   r.CommentableID,
	}
}

// VoteCommentRequest is the form for voting on a comment
type VoteCommentRequest struct {
	Weight int `json:"weight" binding:"required"`
}

// CommentResponse represents a comment in listings
type CommentResponse struct {
	CommentID       uuid.UUID  `json:"commentId"`
	Body            string     `json:"body"`
	Alignment       int        `json:"alignment"`
	AuthorID        uuid.UUID  `json:"authorId"`
	GroupID         *uuid.UUID `json:"groupId,omitempty"`
	CommentableType string     `json:"commentableType"`
	CommentableID   uuid.UUID  `json:"commentableId"`
	UpVotes         int        `json:"upVotes"`
	DownVotes       int        `json:"downVotes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

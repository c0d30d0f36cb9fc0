package domain

import "github.com/google/uuid"

// Vote weights
const (
	VoteWeightUp   = 1
	VoteWeightDown = -1
)

// CommentVote is a single signed vote on a comment. One author holds at
// most one vote per comment; repeated votes overwrite the previous weight.
type CommentVote struct {
	BaseModel
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_comment_votes_comment_author,priority:1" json:"comment_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_comment_votes_comment_author,priority:2" json:"author_id"`
	Weight    int       `gorm:"not null" json:"weight"`
}

// TableName specifies the table name for CommentVote
func (CommentVote) TableName() string {
	return "comment_votes"
}

// ValidWeight reports whether w is an allowed vote weight
func ValidWeight(w int) bool {
	return w == VoteWeightUp || w == VoteWeightDown
}

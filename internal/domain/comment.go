package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Comment alignment values
const (
	AlignmentAgainst = -1
	AlignmentNeutral = 0
	AlignmentInFavor = 1
)

// CommentOrder selects the ordering strategy for comment listings
type CommentOrder string

const (
	CommentOrderDefault       CommentOrder = "default"
	CommentOrderRecent        CommentOrder = "recent"
	CommentOrderBestRated     CommentOrder = "best_rated"
	CommentOrderMostDiscussed CommentOrder = "most_discussed"
)

// ErrInvalidCommentOrder is returned for an unrecognized ordering key
var ErrInvalidCommentOrder = errors.New("invalid comment order")

// ParseCommentOrder validates an ordering key. The empty string is an
// alias for the default (chronological ascending) order.
func ParseCommentOrder(s string) (CommentOrder, error) {
	switch CommentOrder(s) {
	case "", CommentOrderDefault:
		return CommentOrderDefault, nil
	case CommentOrderRecent:
		return CommentOrderRecent, nil
	case CommentOrderBestRated:
		return CommentOrderBestRated, nil
	case CommentOrderMostDiscussed:
		return CommentOrderMostDiscussed, nil
	}
	return "", ErrInvalidCommentOrder
}

// Comment represents a comment on a commentable entity. Comments are
// themselves commentable (thread replies); RootCommentable always points
// at the top-level ancestor of the thread.
type Comment struct {
	BaseModel
	Body                string       `gorm:"type:text;not null" json:"body"`
	Alignment           int          `gorm:"not null;default:0" json:"alignment"`
	AuthorID            uuid.UUID    `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"author_id"`
	GroupID             *uuid.UUID   `gorm:"type:uuid" json:"group_id"`
	CommentableType     ResourceType `gorm:"type:varchar(50);not null;index:idx_comments_commentable,priority:1" json:"commentable_type"`
	CommentableID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_comments_commentable,priority:2" json:"commentable_id"`
	RootCommentableType ResourceType `gorm:"type:varchar(50);not null" json:"root_commentable_type"`
	RootCommentableID   uuid.UUID    `gorm:"type:uuid;not null" json:"root_commentable_id"`
	Votes               []CommentVote `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
	// Moderation is a polymorphic relation, loaded by the repository
	Moderation *Moderation `gorm:"-" json:"moderation,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// Ref implements Commentable
func (c *Comment) Ref() ResourceRef {
	return ResourceRef{Type: ResourceTypeComment, ID: c.ID}
}

// RootRef implements Commentable. Replies inherit the root of their
// parent, so every comment already stores the top-level ancestor.
func (c *Comment) RootRef() ResourceRef {
	return ResourceRef{Type: c.RootCommentableType, ID: c.RootCommentableID}
}

// SpaceID on a comment is resolved through its moderation record
func (c *Comment) SpaceID() uuid.UUID {
	if c.Moderation == nil {
		return uuid.Nil
	}
	return c.Moderation.ParticipatorySpaceID
}

// UsersToNotifyOnCommentCreated implements Commentable: a reply notifies
// the author of the comment being replied to.
func (c *Comment) UsersToNotifyOnCommentCreated() []uuid.UUID {
	return []uuid.UUID{c.AuthorID}
}

// UpVotes returns the positive votes from the preloaded vote set
func (c *Comment) UpVotes() []CommentVote {
	return c.votesWithWeight(VoteWeightUp)
}

// DownVotes returns the negative votes from the preloaded vote set
func (c *Comment) DownVotes() []CommentVote {
	return c.votesWithWeight(VoteWeightDown)
}

// Rating returns the net vote weight
func (c *Comment) Rating() int {
	total := 0
	for _, v := range c.Votes {
		total += v.Weight
	}
	return total
}

func (c *Comment) votesWithWeight(weight int) []CommentVote {
	votes := make([]CommentVote, 0, len(c.Votes))
	for _, v := range c.Votes {
		if v.Weight == weight {
			votes = append(votes, v)
		}
	}
	return votes
}

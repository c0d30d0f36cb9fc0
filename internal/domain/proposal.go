package domain

import "github.com/google/uuid"

// Proposal represents a citizen proposal within a participatory space
type Proposal struct {
	BaseModel
	ParticipatorySpaceID uuid.UUID          `gorm:"type:uuid;not null;index:idx_proposals_space_id" json:"participatory_space_id"`
	AuthorID             uuid.UUID          `gorm:"type:uuid;not null;index:idx_proposals_author_id" json:"author_id"`
	Title                string             `gorm:"type:varchar(255);not null" json:"title"`
	Body                 string             `gorm:"type:text;not null" json:"body"`
	Space                ParticipatorySpace `gorm:"foreignKey:ParticipatorySpaceID;constraint:OnDelete:CASCADE" json:"space,omitempty"`
	// Moderation and FollowerIDs are polymorphic relations, loaded by the repository
	Moderation  *Moderation `gorm:"-" json:"moderation,omitempty"`
	FollowerIDs []uuid.UUID `gorm:"-" json:"follower_ids,omitempty"`
}

// TableName specifies the table name for Proposal
func (Proposal) TableName() string {
	return "proposals"
}

// Ref implements Commentable
func (p *Proposal) Ref() ResourceRef {
	return ResourceRef{Type: ResourceTypeProposal, ID: p.ID}
}

// RootRef implements Commentable; a proposal is always a thread root
func (p *Proposal) RootRef() ResourceRef {
	return p.Ref()
}

// SpaceID implements Commentable
func (p *Proposal) SpaceID() uuid.UUID {
	return p.ParticipatorySpaceID
}

// UsersToNotifyOnCommentCreated implements Commentable: the proposal's
// author and its followers
func (p *Proposal) UsersToNotifyOnCommentCreated() []uuid.UUID {
	return append([]uuid.UUID{p.AuthorID}, p.FollowerIDs...)
}

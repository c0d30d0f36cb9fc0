package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ResourceType identifies the kind of a polymorphic resource reference.
// The set of commentable kinds is closed: adding one means implementing
// Commentable and teaching the resolver in the service layer about it.
type ResourceType string

const (
	ResourceTypeProposal ResourceType = "PROPOSAL"
	ResourceTypeMeeting  ResourceType = "MEETING"
	ResourceTypeComment  ResourceType = "COMMENT"
)

// Valid reports whether t is a known resource type
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeProposal, ResourceTypeMeeting, ResourceTypeComment:
		return true
	}
	return false
}

// ParseResourceType normalizes a wire-format type name to its canonical
// uppercase form. Query params and JSON bodies accept any casing.
func ParseResourceType(s string) (ResourceType, bool) {
	t := ResourceType(strings.ToUpper(s))
	return t, t.Valid()
}

// ResourceRef is a typed reference to a commentable or reportable entity
type ResourceRef struct {
	Type ResourceType `json:"type"`
	ID   uuid.UUID    `json:"id"`
}

// Commentable is the capability every commentable entity implements.
// Implementations return notification recipients from already-loaded
// state; they never query on their own.
type Commentable interface {
	// Ref returns the polymorphic reference to this entity
	Ref() ResourceRef
	// RootRef returns the top-level commentable of the thread this entity
	// belongs to. For top-level entities it equals Ref.
	RootRef() ResourceRef
	// SpaceID returns the participatory space scoping moderation
	SpaceID() uuid.UUID
	// UsersToNotifyOnCommentCreated returns the users interested in new
	// comments on this entity. May contain duplicates and the comment's
	// author; the caller cleans the set before dispatch.
	UsersToNotifyOnCommentCreated() []uuid.UUID
}

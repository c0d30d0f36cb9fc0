package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite")

	err = db.AutoMigrate(
		&domain.ParticipatorySpace{},
		&domain.SpaceModerator{},
		&domain.Proposal{},
		&domain.Meeting{},
		&domain.Comment{},
		&domain.CommentVote{},
		&domain.Moderation{},
		&domain.Follow{},
		&domain.NotificationDelivery{},
	)
	require.NoError(t, err, "failed to migrate schema")

	return db
}

// createTestSpace persists a participatory space with a unique slug
func createTestSpace(t *testing.T, db *gorm.DB) *domain.ParticipatorySpace {
	t.Helper()

	space := &domain.ParticipatorySpace{
		OrganizationID: uuid.New(),
		Slug:           "space-" + uuid.NewString()[:8],
		Title:          "Test Space",
		DefaultLocale:  "en",
	}
	require.NoError(t, db.Create(space).Error)
	return space
}

// createModeratedComment persists a comment together with its moderation
// record in the given upstream state
func createModeratedComment(
	t *testing.T,
	db *gorm.DB,
	spaceID uuid.UUID,
	ref domain.ResourceRef,
	createdAt time.Time,
	state domain.UpstreamModeration,
	hiddenAt *time.Time,
) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Body:                "comment at " + createdAt.Format(time.RFC3339),
		AuthorID:            uuid.New(),
		CommentableType:     ref.Type,
		CommentableID:       ref.ID,
		RootCommentableType: ref.Type,
		RootCommentableID:   ref.ID,
	}
	require.NoError(t, db.Create(comment).Error)

	moderation := &domain.Moderation{
		ReportableType:       domain.ResourceTypeComment,
		ReportableID:         comment.ID,
		ParticipatorySpaceID: spaceID,
		UpstreamModeration:   state,
		HiddenAt:             hiddenAt,
	}
	require.NoError(t, db.Create(moderation).Error)

	return comment
}

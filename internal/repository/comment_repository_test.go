package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"participation-api/internal/domain"
)

func TestFindSortedByCommentable_VisibilityGate(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)
	ref := proposal.Ref()

	now := time.Now().UTC().Truncate(time.Second)
	hiddenAt := now

	visible := createModeratedComment(t, db, space.ID, ref, now, domain.UpstreamAuthorized, nil)
	createModeratedComment(t, db, space.ID, ref, now.Add(time.Second), domain.UpstreamUnmoderate, nil)
	createModeratedComment(t, db, space.ID, ref, now.Add(2*time.Second), domain.UpstreamRefused, nil)
	createModeratedComment(t, db, space.ID, ref, now.Add(3*time.Second), domain.UpstreamAuthorized, &hiddenAt)

	// A comment with no moderation record at all stays invisible
	orphan := &domain.Comment{
		Body:                "orphan",
		AuthorID:            uuid.New(),
		CommentableType:     ref.Type,
		CommentableID:       ref.ID,
		RootCommentableType: ref.Type,
		RootCommentableID:   ref.ID,
	}
	require.NoError(t, db.Create(orphan).Error)

	comments, err := commentRepo.FindSortedByCommentable(context.Background(), ref, domain.CommentOrderDefault)
	require.NoError(t, err)

	require.Len(t, comments, 1, "only the authorized, unhidden comment is visible")
	assert.Equal(t, visible.ID, comments[0].ID)
	require.NotNil(t, comments[0].Moderation)
	assert.True(t, domain.IsVisible(comments[0].Moderation))
}

func TestFindSortedByCommentable_DefaultAndRecentOrder(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)
	ref := proposal.Ref()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	first := createModeratedComment(t, db, space.ID, ref, base, domain.UpstreamAuthorized, nil)
	second := createModeratedComment(t, db, space.ID, ref, base.Add(time.Minute), domain.UpstreamAuthorized, nil)
	third := createModeratedComment(t, db, space.ID, ref, base.Add(2*time.Minute), domain.UpstreamAuthorized, nil)

	byDefault, err := commentRepo.FindSortedByCommentable(context.Background(), ref, domain.CommentOrderDefault)
	require.NoError(t, err)
	require.Len(t, byDefault, 3)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, commentIDs(byDefault))

	byRecent, err := commentRepo.FindSortedByCommentable(context.Background(), ref, domain.CommentOrderRecent)
	require.NoError(t, err)
	require.Len(t, byRecent, 3)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, commentIDs(byRecent))

	// Without intervening writes, a repeated query yields the exact
	// same sequence
	for _, order := range []domain.CommentOrder{domain.CommentOrderDefault, domain.CommentOrderRecent} {
		again, err := commentRepo.FindSortedByCommentable(context.Background(), ref, order)
		require.NoError(t, err)
		if order == domain.CommentOrderDefault {
			assert.Equal(t, commentIDs(byDefault), commentIDs(again))
		} else {
			assert.Equal(t, commentIDs(byRecent), commentIDs(again))
		}
	}
}

func TestFindSortedByCommentable_BestRated(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	voteRepo := NewVoteRepository(db)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)
	ref := proposal.Ref()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	lowRated := createModeratedComment(t, db, space.ID, ref, base, domain.UpstreamAuthorized, nil)
	topRated := createModeratedComment(t, db, space.ID, ref, base.Add(time.Minute), domain.UpstreamAuthorized, nil)
	unvoted := createModeratedComment(t, db, space.ID, ref, base.Add(2*time.Minute), domain.UpstreamAuthorized, nil)

	ctx := context.Background()
	// topRated: +2, lowRated: +1 -1 = 0, unvoted: 0
	require.NoError(t, voteRepo.Upsert(ctx, &domain.CommentVote{CommentID: topRated.ID, AuthorID: uuid.New(), Weight: domain.VoteWeightUp}))
	require.NoError(t, voteRepo.Upsert(ctx, &domain.CommentVote{CommentID: topRated.ID, AuthorID: uuid.New(), Weight: domain.VoteWeightUp}))
	require.NoError(t, voteRepo.Upsert(ctx, &domain.CommentVote{CommentID: lowRated.ID, AuthorID: uuid.New(), Weight: domain.VoteWeightUp}))
	require.NoError(t, voteRepo.Upsert(ctx, &domain.CommentVote{CommentID: lowRated.ID, AuthorID: uuid.New(), Weight: domain.VoteWeightDown}))

	comments, err := commentRepo.FindSortedByCommentable(ctx, ref, domain.CommentOrderBestRated)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Highest rating first; ties (both at zero) break on created_at ascending
	assert.Equal(t, []uuid.UUID{topRated.ID, lowRated.ID, unvoted.ID}, commentIDs(comments))

	// Votes arrive preloaded with the listing
	assert.Len(t, comments[0].Votes, 2)
	assert.Equal(t, 2, comments[0].Rating())
	assert.Len(t, comments[0].UpVotes(), 2)
	assert.Len(t, comments[1].DownVotes(), 1)
}

func TestFindSortedByCommentable_MostDiscussed(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)
	ref := proposal.Ref()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	quiet := createModeratedComment(t, db, space.ID, ref, base, domain.UpstreamAuthorized, nil)
	busy := createModeratedComment(t, db, space.ID, ref, base.Add(time.Minute), domain.UpstreamAuthorized, nil)

	// Two replies to busy. One of them is refused upstream: reply
	// visibility does not change the discussion count.
	createModeratedComment(t, db, space.ID, busy.Ref(), base.Add(2*time.Minute), domain.UpstreamAuthorized, nil)
	createModeratedComment(t, db, space.ID, busy.Ref(), base.Add(3*time.Minute), domain.UpstreamRefused, nil)

	comments, err := commentRepo.FindSortedByCommentable(context.Background(), ref, domain.CommentOrderMostDiscussed)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, []uuid.UUID{busy.ID, quiet.ID}, commentIDs(comments))
}

func TestFindSortedByCommentable_MostDiscussedTieBreak(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)
	ref := proposal.Ref()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	older := createModeratedComment(t, db, space.ID, ref, base, domain.UpstreamAuthorized, nil)
	newer := createModeratedComment(t, db, space.ID, ref, base.Add(time.Minute), domain.UpstreamAuthorized, nil)

	comments, err := commentRepo.FindSortedByCommentable(context.Background(), ref, domain.CommentOrderMostDiscussed)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// No replies anywhere: equal counts fall back to chronological order
	assert.Equal(t, []uuid.UUID{older.ID, newer.ID}, commentIDs(comments))
}

func TestFindSortedByCommentable_InvalidOrder(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)

	_, err := commentRepo.FindSortedByCommentable(
		context.Background(),
		domain.ResourceRef{Type: domain.ResourceTypeProposal, ID: uuid.New()},
		domain.CommentOrder("hot_takes"),
	)
	assert.ErrorIs(t, err, domain.ErrInvalidCommentOrder)
}

func TestFindSortedByCommentable_EmptyResult(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)

	comments, err := commentRepo.FindSortedByCommentable(
		context.Background(),
		domain.ResourceRef{Type: domain.ResourceTypeProposal, ID: uuid.New()},
		domain.CommentOrderDefault,
	)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentFindByID_AttachesModeration(t *testing.T) {
	db := setupTestDB(t)
	moderationRepo := NewModerationRepository(db)
	commentRepo := NewCommentRepository(db, moderationRepo)
	space := createTestSpace(t, db)

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             uuid.New(),
		Title:                "A proposal",
		Body:                 "Body",
	}
	require.NoError(t, db.Create(proposal).Error)

	created := createModeratedComment(t, db, space.ID, proposal.Ref(), time.Now().UTC(), domain.UpstreamUnmoderate, nil)

	found, err := commentRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Moderation)
	assert.Equal(t, domain.UpstreamUnmoderate, found.Moderation.UpstreamModeration)
	assert.Equal(t, space.ID, found.SpaceID())
	assert.False(t, domain.IsVisible(found.Moderation))
}

func commentIDs(comments []*domain.Comment) []uuid.UUID {
	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

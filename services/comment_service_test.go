package services

import (
	"testing"
	"time"

	"complaint_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	t.Run("review tier posts a root comment", func(t *testing.T) {
		comment, err := CreateComment(db, complaint.ID, CommentInput{Content: "Initial review done"}, dcp)
		require.NoError(t, err)
		assert.Equal(t, "Initial review done", comment.Content)
		assert.Equal(t, dcp.ID, comment.CreatedByID)
		assert.True(t, comment.IsRoot())
		assert.False(t, comment.IsInternal)
	})

	t.Run("field officer may not comment", func(t *testing.T) {
		_, err := CreateComment(db, complaint.ID, CommentInput{Content: "hello"}, officer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := CreateComment(db, complaint.ID, CommentInput{Content: "   "}, dcp)
		assert.ErrorIs(t, err, ErrCommentValidation)
	})

	t.Run("parent must belong to the same complaint", func(t *testing.T) {
		other := createTestComplaint(t, db, officer, comm.ID)
		foreign, err := CreateComment(db, other.ID, CommentInput{Content: "elsewhere"}, dcp)
		require.NoError(t, err)

		_, err = CreateComment(db, complaint.ID, CommentInput{Content: "reply", ParentID: &foreign.ID}, dcp)
		assert.ErrorIs(t, err, ErrInvalidParentComment)

		missing := uint(99999)
		_, err = CreateComment(db, complaint.ID, CommentInput{Content: "reply", ParentID: &missing}, dcp)
		assert.ErrorIs(t, err, ErrInvalidParentComment)
	})
}

func TestListCommentsThreading(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	acp := createTestUser(t, db, models.RoleACP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	rootA, err := CreateComment(db, complaint.ID, CommentInput{Content: "first root"}, dcp)
	require.NoError(t, err)
	replyA1, err := CreateComment(db, complaint.ID, CommentInput{Content: "first reply", ParentID: &rootA.ID}, acp)
	require.NoError(t, err)
	replyA2, err := CreateComment(db, complaint.ID, CommentInput{Content: "second reply", ParentID: &rootA.ID}, dcp)
	require.NoError(t, err)
	rootB, err := CreateComment(db, complaint.ID, CommentInput{Content: "second root"}, acp)
	require.NoError(t, err)

	// Force distinct creation order regardless of clock resolution
	base := time.Now().Add(-10 * time.Minute)
	for i, id := range []uint{rootA.ID, replyA1.ID, replyA2.ID, rootB.ID} {
		require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", id).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	thread, err := ListComments(db, complaint.ID, dcp)
	require.NoError(t, err)
	require.Len(t, thread, 2)

	// Roots newest first, replies oldest first
	assert.Equal(t, rootB.ID, thread[0].ID)
	assert.Equal(t, rootA.ID, thread[1].ID)
	require.Len(t, thread[1].Replies, 2)
	assert.Equal(t, replyA1.ID, thread[1].Replies[0].ID)
	assert.Equal(t, replyA2.ID, thread[1].Replies[1].ID)
}

func TestListCommentsInternalVisibility(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	acp := createTestUser(t, db, models.RoleACP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	public, err := CreateComment(db, complaint.ID, CommentInput{Content: "public note"}, dcp)
	require.NoError(t, err)
	internal, err := CreateComment(db, complaint.ID, CommentInput{Content: "internal note", IsInternal: true}, dcp)
	require.NoError(t, err)
	// Public reply under the internal root
	_, err = CreateComment(db, complaint.ID, CommentInput{Content: "reply under internal", ParentID: &internal.ID}, acp)
	require.NoError(t, err)

	t.Run("review tier sees everything", func(t *testing.T) {
		thread, err := ListComments(db, complaint.ID, acp)
		require.NoError(t, err)
		assert.Len(t, thread, 2)
	})

	t.Run("field officer sees neither internal roots nor their subtrees", func(t *testing.T) {
		thread, err := ListComments(db, complaint.ID, officer)
		require.NoError(t, err)
		require.Len(t, thread, 1)
		assert.Equal(t, public.ID, thread[0].ID)
		assert.Empty(t, thread[0].Replies)
	})
}

func TestEditComment(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	acp := createTestUser(t, db, models.RoleACP)
	admin := createTestUser(t, db, models.RoleSuperAdmin)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	comment, err := CreateComment(db, complaint.ID, CommentInput{Content: "draft"}, dcp)
	require.NoError(t, err)

	t.Run("only the author may edit", func(t *testing.T) {
		_, err := EditComment(db, comment.ID, "hijacked", acp)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("author edits", func(t *testing.T) {
		updated, err := EditComment(db, comment.ID, "final wording", dcp)
		require.NoError(t, err)
		assert.Equal(t, "final wording", updated.Content)
	})

	t.Run("super admin may edit any comment", func(t *testing.T) {
		updated, err := EditComment(db, comment.ID, "admin correction", admin)
		require.NoError(t, err)
		assert.Equal(t, "admin correction", updated.Content)
	})

	t.Run("empty replacement content", func(t *testing.T) {
		_, err := EditComment(db, comment.ID, "  ", dcp)
		assert.ErrorIs(t, err, ErrCommentValidation)
	})
}

func TestDeleteCommentCascades(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	acp := createTestUser(t, db, models.RoleACP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	root, err := CreateComment(db, complaint.ID, CommentInput{Content: "root"}, dcp)
	require.NoError(t, err)
	child, err := CreateComment(db, complaint.ID, CommentInput{Content: "child", ParentID: &root.ID}, acp)
	require.NoError(t, err)
	grandchild, err := CreateComment(db, complaint.ID, CommentInput{Content: "grandchild", ParentID: &child.ID}, dcp)
	require.NoError(t, err)
	sibling, err := CreateComment(db, complaint.ID, CommentInput{Content: "unrelated"}, acp)
	require.NoError(t, err)

	t.Run("non-author may not delete", func(t *testing.T) {
		err := DeleteComment(db, root.ID, acp)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("deleting the root removes the whole subtree", func(t *testing.T) {
		require.NoError(t, DeleteComment(db, root.ID, dcp))

		for _, id := range []uint{root.ID, child.ID, grandchild.ID} {
			_, err := GetComment(db, id)
			assert.ErrorIs(t, err, ErrCommentNotFound)
		}

		// The unrelated root survives
		survivor, err := GetComment(db, sibling.ID)
		require.NoError(t, err)
		assert.Equal(t, "unrelated", survivor.Content)
	})
}

package services

import (
	"testing"
	"time"

	"complaint_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueNotice(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	t.Run("issues a fresh notice on the first slot", func(t *testing.T) {
		updated, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/001", time.Now(), officer)
		require.NoError(t, err)

		notice := updated.Notice(models.NoticeSlotFirst)
		assert.True(t, notice.Issued())
		assert.Equal(t, "NTC/2026/001", *notice.Number)
		assert.Equal(t, models.NoticeApprovalPending, notice.ApprovalStatus)
		assert.Nil(t, notice.DCPApprovedByID)

		// Second slot is untouched
		assert.False(t, updated.Notice(models.NoticeSlotSecond).Issued())
	})

	t.Run("rejects an empty notice number", func(t *testing.T) {
		_, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "   ", time.Now(), officer)
		assert.ErrorIs(t, err, ErrNoticeValidation)
	})

	t.Run("complainant may not issue notices", func(t *testing.T) {
		complainant := createTestUser(t, db, models.RoleComplainant)
		_, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/002", time.Now(), complainant)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown complaint", func(t *testing.T) {
		_, err := IssueNotice(db, 99999, models.NoticeSlotFirst, "NTC/2026/003", time.Now(), officer)
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}

func TestApproveNoticeStageOrdering(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	acp := createTestUser(t, db, models.RoleACP)
	commissioner := createTestUser(t, db, models.RoleCommissioner)

	complaint := createTestComplaint(t, db, officer, comm.ID)
	_, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/010", time.Now(), officer)
	require.NoError(t, err)

	t.Run("acp cannot approve before dcp", func(t *testing.T) {
		_, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageACP, acp)
		assert.ErrorIs(t, err, ErrNoticeValidation)
	})

	t.Run("commissioner cannot approve before earlier stages", func(t *testing.T) {
		_, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageCommissioner, commissioner)
		assert.ErrorIs(t, err, ErrNoticeValidation)
	})

	t.Run("stages approve in order with monotonic timestamps", func(t *testing.T) {
		updated, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageDCP, dcp)
		require.NoError(t, err)
		notice := updated.Notice(models.NoticeSlotFirst)
		assert.Equal(t, dcp.ID, *notice.DCPApprovedByID)
		assert.Equal(t, models.NoticeApprovalPending, notice.ApprovalStatus)

		updated, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageACP, acp)
		require.NoError(t, err)
		notice = updated.Notice(models.NoticeSlotFirst)
		assert.Equal(t, acp.ID, *notice.ACPApprovedByID)
		assert.Equal(t, models.NoticeApprovalPending, notice.ApprovalStatus)
		assert.False(t, notice.ACPApprovedAt.Before(*notice.DCPApprovedAt))

		updated, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageCommissioner, commissioner)
		require.NoError(t, err)
		notice = updated.Notice(models.NoticeSlotFirst)
		assert.Equal(t, commissioner.ID, *notice.CommissionerApprovedByID)
		assert.Equal(t, models.NoticeApprovalApproved, notice.ApprovalStatus)
		assert.False(t, notice.CommissionerApprovedAt.Before(*notice.ACPApprovedAt))
	})

	t.Run("fully approved notice rejects further actions", func(t *testing.T) {
		_, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageCommissioner, commissioner)
		assert.ErrorIs(t, err, ErrNoticeValidation)
	})
}

func TestApproveNoticeStagePermissions(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	acp := createTestUser(t, db, models.RoleACP)

	complaint := createTestComplaint(t, db, officer, comm.ID)
	_, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/020", time.Now(), officer)
	require.NoError(t, err)

	// ACP approving the dcp stage is forbidden and leaves state unchanged
	_, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageDCP, acp)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	after, err := GetComplaint(db, complaint.ID)
	require.NoError(t, err)
	notice := after.Notice(models.NoticeSlotFirst)
	assert.Nil(t, notice.DCPApprovedByID)
	assert.Nil(t, notice.DCPApprovedAt)
	assert.Equal(t, models.NoticeApprovalPending, notice.ApprovalStatus)
}

func TestApproveNoticeStageNotIssued(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	_, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageDCP, dcp)
	assert.ErrorIs(t, err, ErrNoticeValidation)
}

func TestRejectNoticeStage(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	commissioner := createTestUser(t, db, models.RoleCommissioner)

	complaint := createTestComplaint(t, db, officer, comm.ID)
	_, err := IssueNotice(db, complaint.ID, models.NoticeSlotSecond, "NTC/2026/030", time.Now(), officer)
	require.NoError(t, err)
	_, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageDCP, dcp)
	require.NoError(t, err)

	t.Run("whitespace-only reason is rejected and state unchanged", func(t *testing.T) {
		_, err := RejectNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageACP, "   ", commissioner)
		assert.ErrorIs(t, err, ErrRejectionReasonRequired)

		after, err := GetComplaint(db, complaint.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NoticeApprovalPending, after.Notice(models.NoticeSlotSecond).ApprovalStatus)
	})

	t.Run("commissioner rejects the acp stage of the second notice", func(t *testing.T) {
		updated, err := RejectNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageACP,
			"Grounds insufficient for second notice", commissioner)
		require.NoError(t, err)

		notice := updated.Notice(models.NoticeSlotSecond)
		assert.Equal(t, models.NoticeApprovalRejected, notice.ApprovalStatus)
		assert.Equal(t, commissioner.ID, *notice.RejectedByID)
		assert.Equal(t, "Grounds insufficient for second notice", *notice.RejectionReason)
		assert.NotNil(t, notice.RejectedAt)
		// Stage fields past the rejected stage stay unset
		assert.Nil(t, notice.CommissionerApprovedByID)
		assert.Nil(t, notice.CommissionerApprovedAt)
		// The first slot is unaffected
		assert.Equal(t, models.NoticeApprovalPending, updated.Notice(models.NoticeSlotFirst).ApprovalStatus)
	})

	t.Run("rejected notice blocks further stage actions", func(t *testing.T) {
		_, err := ApproveNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageACP,
			createTestUser(t, db, models.RoleACP))
		assert.ErrorIs(t, err, ErrNoticeValidation)

		_, err = RejectNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageACP, "again", commissioner)
		assert.ErrorIs(t, err, ErrNoticeValidation)
	})

	t.Run("dcp may not reject a higher stage", func(t *testing.T) {
		_, err := RejectNoticeStage(db, complaint.ID, models.NoticeSlotSecond, models.NoticeStageCommissioner, "reason", dcp)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestReissueResetsWorkflow(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	commissioner := createTestUser(t, db, models.RoleCommissioner)

	complaint := createTestComplaint(t, db, officer, comm.ID)
	_, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/040", time.Now(), officer)
	require.NoError(t, err)
	_, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageDCP, dcp)
	require.NoError(t, err)
	_, err = RejectNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageACP, "needs rework", commissioner)
	require.NoError(t, err)

	// Reissuing clears every approval and rejection field
	updated, err := IssueNotice(db, complaint.ID, models.NoticeSlotFirst, "NTC/2026/041", time.Now(), officer)
	require.NoError(t, err)

	notice := updated.Notice(models.NoticeSlotFirst)
	assert.Equal(t, "NTC/2026/041", *notice.Number)
	assert.Equal(t, models.NoticeApprovalPending, notice.ApprovalStatus)
	assert.Nil(t, notice.DCPApprovedByID)
	assert.Nil(t, notice.DCPApprovedAt)
	assert.Nil(t, notice.RejectedByID)
	assert.Nil(t, notice.RejectedAt)
	assert.Nil(t, notice.RejectionReason)

	// Workflow restarts from the dcp stage
	_, err = ApproveNoticeStage(db, complaint.ID, models.NoticeSlotFirst, models.NoticeStageDCP, dcp)
	assert.NoError(t, err)
}

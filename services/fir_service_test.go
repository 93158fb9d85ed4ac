package services

import (
	"testing"
	"time"

	"complaint_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFIR(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	t.Run("registers a fir with default status", func(t *testing.T) {
		fir, err := CreateFIR(db, complaint.ID, FIRInput{
			FIRNumber:          "FIR/2026/001",
			DateOfRegistration: time.Now(),
			PoliceStation:      "Sector 12 PS",
		}, officer)
		require.NoError(t, err)
		assert.Equal(t, "FIR/2026/001", fir.FIRNumber)
		assert.Equal(t, models.FIRStatusRegistered, fir.Status)
		assert.Equal(t, complaint.ID, fir.ComplaintID)
		assert.Equal(t, officer.ID, fir.CreatedByID)
	})

	t.Run("required fields", func(t *testing.T) {
		_, err := CreateFIR(db, complaint.ID, FIRInput{
			DateOfRegistration: time.Now(),
			PoliceStation:      "Sector 12 PS",
		}, officer)
		assert.ErrorIs(t, err, ErrFIRValidation)

		_, err = CreateFIR(db, complaint.ID, FIRInput{
			FIRNumber:          "FIR/2026/002",
			DateOfRegistration: time.Now(),
		}, officer)
		assert.ErrorIs(t, err, ErrFIRValidation)
	})

	t.Run("complainant may not register firs", func(t *testing.T) {
		complainant := createTestUser(t, db, models.RoleComplainant)
		_, err := CreateFIR(db, complaint.ID, FIRInput{
			FIRNumber:          "FIR/2026/003",
			DateOfRegistration: time.Now(),
			PoliceStation:      "Sector 12 PS",
		}, complainant)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown complaint", func(t *testing.T) {
		_, err := CreateFIR(db, 99999, FIRInput{
			FIRNumber:          "FIR/2026/004",
			DateOfRegistration: time.Now(),
			PoliceStation:      "Sector 12 PS",
		}, officer)
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}

func TestFIRNumberGloballyUnique(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	admin := createTestUser(t, db, models.RoleSuperAdmin)
	first := createTestComplaint(t, db, officer, comm.ID)
	second := createTestComplaint(t, db, officer, comm.ID)

	fir, err := CreateFIR(db, first.ID, FIRInput{
		FIRNumber:          "FIR/2026/050",
		DateOfRegistration: time.Now(),
		PoliceStation:      "Central PS",
	}, officer)
	require.NoError(t, err)

	// The same number is refused even on a different complaint
	_, err = CreateFIR(db, second.ID, FIRInput{
		FIRNumber:          "FIR/2026/050",
		DateOfRegistration: time.Now(),
		PoliceStation:      "North PS",
	}, officer)
	assert.ErrorIs(t, err, ErrDuplicateFIRNumber)

	var count int64
	db.Model(&models.FIR{}).Where("complaint_id = ?", second.ID).Count(&count)
	assert.Zero(t, count)

	// Deleting the fir frees the number for reuse
	require.NoError(t, DeleteFIR(db, fir.ID, admin))
	_, err = CreateFIR(db, second.ID, FIRInput{
		FIRNumber:          "FIR/2026/050",
		DateOfRegistration: time.Now(),
		PoliceStation:      "North PS",
	}, officer)
	assert.NoError(t, err)
}

func TestUpdateFIR(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	dcp := createTestUser(t, db, models.RoleDCP)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	fir, err := CreateFIR(db, complaint.ID, FIRInput{
		FIRNumber:          "FIR/2026/060",
		DateOfRegistration: time.Now(),
		PoliceStation:      "Central PS",
	}, officer)
	require.NoError(t, err)

	t.Run("field officer may not update", func(t *testing.T) {
		status := models.FIRStatusUnderInvestigation
		_, err := UpdateFIR(db, fir.ID, FIRPatch{Status: &status}, officer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("review tier updates status and officer details", func(t *testing.T) {
		status := models.FIRStatusUnderInvestigation
		officerName := "Inspector Verma"
		updated, err := UpdateFIR(db, fir.ID, FIRPatch{Status: &status, InvestigatingOfficer: &officerName}, dcp)
		require.NoError(t, err)
		assert.Equal(t, models.FIRStatusUnderInvestigation, updated.Status)
		assert.Equal(t, "Inspector Verma", *updated.InvestigatingOfficer)
		assert.Equal(t, dcp.ID, *updated.UpdatedByID)
		// The registration number never changes
		assert.Equal(t, "FIR/2026/060", updated.FIRNumber)
	})

	t.Run("invalid status", func(t *testing.T) {
		bogus := "MISPLACED"
		_, err := UpdateFIR(db, fir.ID, FIRPatch{Status: &bogus}, dcp)
		assert.ErrorIs(t, err, ErrFIRValidation)
	})

	t.Run("unknown fir", func(t *testing.T) {
		status := models.FIRStatusClosed
		_, err := UpdateFIR(db, 99999, FIRPatch{Status: &status}, dcp)
		assert.ErrorIs(t, err, ErrFIRNotFound)
	})
}

func TestDeleteFIRAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	admin := createTestUser(t, db, models.RoleSuperAdmin)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	fir, err := CreateFIR(db, complaint.ID, FIRInput{
		FIRNumber:          "FIR/2026/070",
		DateOfRegistration: time.Now(),
		PoliceStation:      "Central PS",
	}, officer)
	require.NoError(t, err)

	err = DeleteFIR(db, fir.ID, createTestUser(t, db, models.RoleCommissioner))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, DeleteFIR(db, fir.ID, admin))
	_, err = GetFIR(db, fir.ID)
	assert.ErrorIs(t, err, ErrFIRNotFound)
}

func TestListFIRsOrdering(t *testing.T) {
	db := setupTestDB(t)
	comm := createTestCommissionerate(t, db)
	officer := createTestUser(t, db, models.RoleFieldOfficer)
	complaint := createTestComplaint(t, db, officer, comm.ID)

	older := time.Now().AddDate(0, 0, -10)
	newer := time.Now()

	_, err := CreateFIR(db, complaint.ID, FIRInput{
		FIRNumber: "FIR/2026/080", DateOfRegistration: older, PoliceStation: "Central PS",
	}, officer)
	require.NoError(t, err)
	_, err = CreateFIR(db, complaint.ID, FIRInput{
		FIRNumber: "FIR/2026/081", DateOfRegistration: newer, PoliceStation: "Central PS",
	}, officer)
	require.NoError(t, err)

	firs, err := ListFIRs(db, complaint.ID)
	require.NoError(t, err)
	require.Len(t, firs, 2)
	assert.Equal(t, "FIR/2026/081", firs[0].FIRNumber)
	assert.Equal(t, "FIR/2026/080", firs[1].FIRNumber)
}

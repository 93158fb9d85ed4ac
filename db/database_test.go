package db

import (
	"path/filepath"
	"testing"

	"complaint_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeMigratesComplaintSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.db")

	require.NoError(t, Initialize(path, "test"))
	defer Close()

	for _, table := range []string{
		"users", "sessions", "complaints", "firs", "comments",
		"complaint_attachments", "commissionerates", "audit_logs",
	} {
		assert.True(t, DB.Migrator().HasTable(table), "missing table %s", table)
	}

	// The flattened notice workflow columns exist on the complaint row
	assert.True(t, DB.Migrator().HasColumn(&models.Complaint{}, "notice1_number"))
	assert.True(t, DB.Migrator().HasColumn(&models.Complaint{}, "notice2_approval_status"))
}

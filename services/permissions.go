package services

import (
	"complaint_flow_app_go/models"
)

// Role-permission rules for the complaint review hierarchy. These are pure
// functions over the role and status constants; there is no ambient
// configuration to mutate.

// CanTransitionComplaint reports whether a role may mutate a complaint
// currently in the given status. An empty status means a freshly created
// complaint, which anyone with a known role may edit.
func CanTransitionComplaint(role, status string) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	if status == "" {
		return true
	}

	switch role {
	case models.RoleFieldOfficer:
		return status == models.ComplaintStatusPending
	case models.RoleDCP:
		return status == models.ComplaintStatusPending ||
			status == models.ComplaintStatusUnderReviewDCP
	case models.RoleACP:
		return status == models.ComplaintStatusUnderReviewDCP ||
			status == models.ComplaintStatusUnderReviewACP
	case models.RoleCommissioner:
		return status == models.ComplaintStatusUnderReviewACP ||
			status == models.ComplaintStatusUnderReviewCommissioner
	}
	return false
}

// NextComplaintStatus returns the tier-advance target for a role's forward
// action, or "" when the role has no forward target. The commissioner's
// forward action resolves the complaint. SUPER_ADMIN has no tier of its own
// and therefore no forward target.
func NextComplaintStatus(role string) string {
	switch role {
	case models.RoleFieldOfficer, models.RoleComplainant:
		return models.ComplaintStatusUnderReviewDCP
	case models.RoleDCP:
		return models.ComplaintStatusUnderReviewACP
	case models.RoleACP:
		return models.ComplaintStatusUnderReviewCommissioner
	case models.RoleCommissioner:
		return models.ComplaintStatusResolved
	}
	return ""
}

// NextAssigneeRole returns the role the complaint should be handed to on a
// forward action, or "" when no further assignee exists (resolution).
func NextAssigneeRole(role string) string {
	switch role {
	case models.RoleFieldOfficer, models.RoleComplainant:
		return models.RoleDCP
	case models.RoleDCP:
		return models.RoleACP
	case models.RoleACP:
		return models.RoleCommissioner
	}
	return ""
}

// CanApproveNoticeStage reports whether a role may act on the given notice
// approval stage. Each stage is owned by exactly one tier; SUPER_ADMIN may
// act on any stage.
func CanApproveNoticeStage(role string, stage models.NoticeStage) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	switch stage {
	case models.NoticeStageDCP:
		return role == models.RoleDCP
	case models.NoticeStageACP:
		return role == models.RoleACP
	case models.NoticeStageCommissioner:
		return role == models.RoleCommissioner
	}
	return false
}

// CanIssueNotice reports whether a role may generate or regenerate a notice.
func CanIssueNotice(role string) bool {
	switch role {
	case models.RoleFieldOfficer, models.RoleDCP, models.RoleACP,
		models.RoleCommissioner, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanCreateFIR reports whether a role may register a FIR on a complaint.
func CanCreateFIR(role string) bool {
	switch role {
	case models.RoleFieldOfficer, models.RoleDCP, models.RoleACP,
		models.RoleCommissioner, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageFIR reports whether a role may edit an existing FIR.
func CanManageFIR(role string) bool {
	switch role {
	case models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanDeleteFIR restricts FIR deletion to the super admin.
func CanDeleteFIR(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanComment reports whether a role may post comments on a complaint.
func CanComment(role string) bool {
	switch role {
	case models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanSeeInternalComments reports whether a role receives internal comments
// when listing a complaint's thread.
func CanSeeInternalComments(role string) bool {
	switch role {
	case models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanDeleteComplaint restricts complaint deletion to the super admin.
func CanDeleteComplaint(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanManageMasterData restricts jurisdiction master-data writes to the
// super admin.
func CanManageMasterData(role string) bool {
	return role == models.RoleSuperAdmin
}

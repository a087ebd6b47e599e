package user

type Permission string

const (
	// Report access
	PermissionReportViewAll  Permission = "report.view_all"  // every report in the list
	PermissionReportViewTeam Permission = "report.view_team" // department SALES reports in the list
	PermissionReportViewAny  Permission = "report.view_any"  // open any single report by id

	// Comment access
	PermissionCommentModerate Permission = "comment.moderate" // delete other users' comments

	// Customer management
	PermissionCustomerEdit   Permission = "customer.edit"
	PermissionCustomerDelete Permission = "customer.delete"

	// User account management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions. Note that the single-report
// view (report.view_any) is deliberately broader than the list scope: a
// MANAGER may open any report by id but only sees department reports in the
// list.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReportViewAll,
		PermissionReportViewTeam,
		PermissionReportViewAny,
		PermissionCommentModerate,
		PermissionCustomerEdit,
		PermissionCustomerDelete,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionReportViewTeam,
		PermissionReportViewAny,
		PermissionCustomerEdit,
	},
	RoleSales: {
		// Sales reps only get ownership-based access
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

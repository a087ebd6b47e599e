// Package authz holds the pure authorization decisions for the reporting
// application. Every function here is a side-effect-free computation over the
// authenticated user resolved by the request middleware; callers translate a
// Deny into a 403 response via the error this package produces.
package authz

import (
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

// Decision is the result of an authorization check. Denial is a value, not an
// error condition: only the HTTP layer turns it into a Forbidden response.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// ForbiddenError is how a Deny crosses service boundaries. response.HandleError
// maps it to a 403 envelope.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// Err returns nil for an allowed decision and a *ForbiddenError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &ForbiddenError{Reason: d.Reason}
}

// ReportScope describes which daily reports a user may see in list views.
// Exactly one of the three shapes applies:
//   - All: every report (ADMIN)
//   - UserID + DepartmentID: own reports plus reports of SALES users in that
//     department (MANAGER with a department)
//   - UserID only: own reports (SALES, or a MANAGER without a department)
type ReportScope struct {
	All          bool
	UserID       int
	DepartmentID *int
}

// ReportListScope computes the visibility filter for the report list. A
// MANAGER without a department falls back to self-only visibility rather than
// erroring.
func ReportListScope(u user.User) ReportScope {
	if user.HasPermission(u.Role, user.PermissionReportViewAll) {
		return ReportScope{All: true}
	}
	if user.HasPermission(u.Role, user.PermissionReportViewTeam) && u.DepartmentID != nil {
		return ReportScope{UserID: u.ID, DepartmentID: u.DepartmentID}
	}
	return ReportScope{UserID: u.ID}
}

// CanViewReport decides single-report read access: the owner, or anyone with
// report.view_any (MANAGER and ADMIN regardless of department). This is wider
// than the list scope on purpose; see RolePermissions.
func CanViewReport(u user.User, ownerID int) Decision {
	if u.ID == ownerID {
		return Allow()
	}
	if user.HasPermission(u.Role, user.PermissionReportViewAny) {
		return Allow()
	}
	return Deny("you do not have permission to view this report")
}

// CanCommentOnReport allows the report owner and any MANAGER or ADMIN.
func CanCommentOnReport(u user.User, reportOwnerID int) Decision {
	if u.ID == reportOwnerID {
		return Allow()
	}
	if user.HasPermission(u.Role, user.PermissionReportViewAny) {
		return Allow()
	}
	return Deny("you do not have permission to comment on this report")
}

// CanDeleteComment allows the comment author and ADMIN. A MANAGER cannot
// delete other users' comments even though they can create comments on
// subordinates' reports.
func CanDeleteComment(u user.User, authorID int) Decision {
	if u.ID == authorID {
		return Allow()
	}
	if user.HasPermission(u.Role, user.PermissionCommentModerate) {
		return Allow()
	}
	return Deny("you do not have permission to delete this comment")
}

// CanEditCustomer gates customer create/update: MANAGER or ADMIN.
func CanEditCustomer(u user.User) Decision {
	if user.HasPermission(u.Role, user.PermissionCustomerEdit) {
		return Allow()
	}
	return Deny("you do not have permission to perform this operation")
}

// CanDeleteCustomer gates customer delete: ADMIN only.
func CanDeleteCustomer(u user.User) Decision {
	if user.HasPermission(u.Role, user.PermissionCustomerDelete) {
		return Allow()
	}
	return Deny("you do not have permission to perform this operation")
}

// CanManageUsers gates all user account management: ADMIN only, everyone else
// is denied outright.
func CanManageUsers(u user.User) Decision {
	if user.HasPermission(u.Role, user.PermissionUserManage) {
		return Allow()
	}
	return Deny("you do not have permission to perform this operation")
}

package authz

import (
	"testing"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func salesUser(id int, deptID *int) user.User {
	return user.User{ID: id, Role: user.RoleSales, DepartmentID: deptID, IsActive: true}
}

func managerUser(id int, deptID *int) user.User {
	return user.User{ID: id, Role: user.RoleManager, DepartmentID: deptID, IsActive: true}
}

func adminUser(id int) user.User {
	return user.User{ID: id, Role: user.RoleAdmin, IsActive: true}
}

func TestReportListScope_Admin(t *testing.T) {
	scope := ReportListScope(adminUser(1))
	assert.True(t, scope.All)
}

func TestReportListScope_ManagerWithDepartment(t *testing.T) {
	scope := ReportListScope(managerUser(2, intPtr(10)))

	assert.False(t, scope.All)
	assert.Equal(t, 2, scope.UserID)
	assert.NotNil(t, scope.DepartmentID)
	assert.Equal(t, 10, *scope.DepartmentID)
}

func TestReportListScope_ManagerWithoutDepartment(t *testing.T) {
	// A departmentless manager narrows to self-only, never errors.
	scope := ReportListScope(managerUser(2, nil))

	assert.False(t, scope.All)
	assert.Equal(t, 2, scope.UserID)
	assert.Nil(t, scope.DepartmentID)
}

func TestReportListScope_Sales(t *testing.T) {
	scope := ReportListScope(salesUser(3, intPtr(10)))

	assert.False(t, scope.All)
	assert.Equal(t, 3, scope.UserID)
	assert.Nil(t, scope.DepartmentID)
}

func TestCanViewReport(t *testing.T) {
	owner := salesUser(3, intPtr(10))
	otherSales := salesUser(4, intPtr(10))
	// Single-report access is intentionally wider than the list: a manager
	// from another department may still open a report by id.
	otherDeptManager := managerUser(5, intPtr(20))

	assert.True(t, CanViewReport(owner, 3).Allowed)
	assert.False(t, CanViewReport(otherSales, 3).Allowed)
	assert.True(t, CanViewReport(otherDeptManager, 3).Allowed)
	assert.True(t, CanViewReport(managerUser(6, nil), 3).Allowed)
	assert.True(t, CanViewReport(adminUser(1), 3).Allowed)
}

func TestCanCommentOnReport(t *testing.T) {
	assert.True(t, CanCommentOnReport(salesUser(3, nil), 3).Allowed)
	assert.False(t, CanCommentOnReport(salesUser(4, nil), 3).Allowed)
	assert.True(t, CanCommentOnReport(managerUser(5, nil), 3).Allowed)
	assert.True(t, CanCommentOnReport(adminUser(1), 3).Allowed)
}

func TestCanDeleteComment(t *testing.T) {
	author := salesUser(3, nil)
	otherSales := salesUser(4, nil)
	manager := managerUser(5, nil)
	admin := adminUser(1)

	assert.True(t, CanDeleteComment(author, 3).Allowed)
	assert.False(t, CanDeleteComment(otherSales, 3).Allowed)
	// Managers can create comments on subordinates' reports but cannot
	// delete someone else's comment.
	assert.False(t, CanDeleteComment(manager, 3).Allowed)
	assert.True(t, CanDeleteComment(manager, 5).Allowed)
	assert.True(t, CanDeleteComment(admin, 3).Allowed)
}

func TestCustomerPermissions(t *testing.T) {
	assert.False(t, CanEditCustomer(salesUser(3, nil)).Allowed)
	assert.True(t, CanEditCustomer(managerUser(5, nil)).Allowed)
	assert.True(t, CanEditCustomer(adminUser(1)).Allowed)

	assert.False(t, CanDeleteCustomer(salesUser(3, nil)).Allowed)
	assert.False(t, CanDeleteCustomer(managerUser(5, nil)).Allowed)
	assert.True(t, CanDeleteCustomer(adminUser(1)).Allowed)
}

func TestCanManageUsers(t *testing.T) {
	assert.False(t, CanManageUsers(salesUser(3, nil)).Allowed)
	assert.False(t, CanManageUsers(managerUser(5, nil)).Allowed)
	assert.True(t, CanManageUsers(adminUser(1)).Allowed)
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow().Err())

	err := Deny("nope").Err()
	assert.Error(t, err)

	var fe *ForbiddenError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, "nope", fe.Reason)
}

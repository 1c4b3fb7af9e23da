// Package authz holds the role/operation permission table for the staffing
// workflow. The table is fixed at compile time; services consult it before
// any mutating operation and HTTP middleware mirrors it on the routes.
package authz

import "github.com/sgpa-dev/sgpa-api/internal/models"

// Operation identifies a permission-gated workflow operation.
type Operation string

const (
	OpCreateProject    Operation = "project:create"
	OpUpdateProject    Operation = "project:update"
	OpRegisterForm     Operation = "form:register"
	OpApproveForm      Operation = "form:approve"
	OpRejectForm       Operation = "form:reject"
	OpSubmitRequest    Operation = "request:submit"
	OpSetRequestStatus Operation = "request:set-status"
	OpManageUsers      Operation = "user:manage"
	OpPushNotification Operation = "notification:push"
	OpEvaluateQuota    Operation = "quota:evaluate"
	OpReadOwn          Operation = "read:own"
	OpReadAll          Operation = "read:all"
	OpExport           Operation = "export"
)

// A director may reject forms on projects they own (legacy override); the
// ownership part of that rule is enforced by the form lifecycle, this table
// only answers whether the role may attempt the operation at all.
var permissions = map[Operation]map[models.UserRole]bool{
	OpCreateProject:    {models.RoleDirector: true},
	OpUpdateProject:    {models.RoleDirector: true},
	OpRegisterForm:     {models.RoleDirector: true},
	OpApproveForm:      {models.RoleReviewer: true},
	OpRejectForm:       {models.RoleReviewer: true, models.RoleDirector: true},
	OpSubmitRequest:    {models.RoleDirector: true},
	OpSetRequestStatus: {models.RoleReviewer: true},
	OpManageUsers:      {models.RoleReviewer: true},
	OpPushNotification: {models.RoleReviewer: true},
	OpEvaluateQuota:    {models.RoleReviewer: true},
	OpReadOwn:          {models.RoleDirector: true, models.RoleReviewer: true},
	OpReadAll:          {models.RoleReviewer: true},
	OpExport:           {models.RoleReviewer: true},
}

// Allows reports whether the role may invoke the operation.
func Allows(role models.UserRole, op Operation) bool {
	allowed, ok := permissions[op]
	if !ok {
		return false
	}
	return allowed[role]
}

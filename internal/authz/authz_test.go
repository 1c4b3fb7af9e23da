package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

func TestAllows(t *testing.T) {
	cases := []struct {
		op       Operation
		role     models.UserRole
		expected bool
	}{
		{OpCreateProject, models.RoleDirector, true},
		{OpCreateProject, models.RoleReviewer, false},
		{OpRegisterForm, models.RoleDirector, true},
		{OpRegisterForm, models.RoleReviewer, false},
		{OpApproveForm, models.RoleReviewer, true},
		{OpApproveForm, models.RoleDirector, false},
		{OpRejectForm, models.RoleReviewer, true},
		{OpRejectForm, models.RoleDirector, true}, // legacy owner override
		{OpSubmitRequest, models.RoleDirector, true},
		{OpSubmitRequest, models.RoleReviewer, false},
		{OpSetRequestStatus, models.RoleReviewer, true},
		{OpSetRequestStatus, models.RoleDirector, false},
		{OpManageUsers, models.RoleReviewer, true},
		{OpManageUsers, models.RoleDirector, false},
		{OpReadOwn, models.RoleDirector, true},
		{OpReadOwn, models.RoleReviewer, true},
		{OpReadAll, models.RoleReviewer, true},
		{OpReadAll, models.RoleDirector, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Allows(tc.role, tc.op), "%s / %s", tc.role, tc.op)
	}
}

func TestAllowsDeniesPlainRoleEverywhere(t *testing.T) {
	for op := range permissions {
		assert.False(t, Allows(models.RolePlain, op), "plain role must be denied %s", op)
	}
}

func TestAllowsUnknownOperation(t *testing.T) {
	assert.False(t, Allows(models.RoleReviewer, Operation("unknown")))
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workleaf/resource-booking-backend/internal/user"
)

func TestCanCreateFor(t *testing.T) {
	employee := user.Identity{UserID: "u1", Role: user.RoleEmployee}
	manager := user.Identity{UserID: "m1", Role: user.RoleManager}
	admin := user.Identity{UserID: "a1", Role: user.RoleAdmin}

	assert.True(t, canCreateFor(employee, "u1"))
	assert.False(t, canCreateFor(employee, "u2"))
	assert.True(t, canCreateFor(manager, "u2"))
	assert.True(t, canCreateFor(admin, "u2"))
}

func TestCanModify(t *testing.T) {
	assert.True(t, canModify(user.Identity{UserID: "u1", Role: user.RoleEmployee}, "u1"))
	assert.False(t, canModify(user.Identity{UserID: "u1", Role: user.RoleEmployee}, "u2"))
	assert.False(t, canModify(user.Identity{UserID: "m1", Role: user.RoleManager}, "u2"))
	assert.True(t, canModify(user.Identity{UserID: "m1", Role: user.RoleManager}, "m1"))
	assert.True(t, canModify(user.Identity{UserID: "a1", Role: user.RoleAdmin}, "u2"))
}

func TestCanView(t *testing.T) {
	assert.True(t, canView(user.Identity{UserID: "u1", Role: user.RoleEmployee}, "u1"))
	assert.False(t, canView(user.Identity{UserID: "u1", Role: user.RoleEmployee}, "u2"))
	assert.True(t, canView(user.Identity{UserID: "m1", Role: user.RoleManager}, "u2"))
	assert.True(t, canView(user.Identity{UserID: "a1", Role: user.RoleAdmin}, "u2"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, initialStatus(user.RoleEmployee))
	assert.Equal(t, StatusConfirmed, initialStatus(user.RoleManager))
	assert.Equal(t, StatusConfirmed, initialStatus(user.RoleAdmin))
}

func TestBypasses(t *testing.T) {
	assert.True(t, bypassesPastCheck(user.RoleAdmin))
	assert.False(t, bypassesPastCheck(user.RoleManager))
	assert.False(t, bypassesPastCheck(user.RoleEmployee))

	assert.True(t, bypassesTypeRestriction(user.RoleAdmin))
	assert.False(t, bypassesTypeRestriction(user.RoleManager))
	assert.False(t, bypassesTypeRestriction(user.RoleEmployee))
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCancelled.Active())
	assert.False(t, StatusCompleted.Active())
	assert.False(t, StatusNoShow.Active())
}

package booking

import "github.com/workleaf/resource-booking-backend/internal/user"

// Authorization rules for booking operations, collected in one place so the
// role/ownership matrix stays auditable instead of being scattered through
// the service.

// canCreateFor reports whether the caller may create a booking on behalf of
// the target user. Employees may only book for themselves.
func canCreateFor(caller user.Identity, targetUserID string) bool {
	if caller.Role == user.RoleEmployee {
		return caller.UserID == targetUserID
	}
	return true
}

// canModify reports whether the caller may update or cancel a booking owned
// by ownerID.
func canModify(caller user.Identity, ownerID string) bool {
	return caller.Role == user.RoleAdmin || caller.UserID == ownerID
}

// canView reports whether the caller may read a booking owned by ownerID.
func canView(caller user.Identity, ownerID string) bool {
	return caller.Role == user.RoleAdmin || caller.Role == user.RoleManager || caller.UserID == ownerID
}

// bypassesPastCheck: admins may place bookings that start in the past.
func bypassesPastCheck(role user.Role) bool {
	return role == user.RoleAdmin
}

// bypassesTypeRestriction: admins may book resource types the target user is
// not normally allowed to use.
func bypassesTypeRestriction(role user.Role) bool {
	return role == user.RoleAdmin
}

// initialStatus: bookings placed by managers or admins are confirmed
// immediately; employee bookings await confirmation.
func initialStatus(role user.Role) Status {
	if role == user.RoleAdmin || role == user.RoleManager {
		return StatusConfirmed
	}
	return StatusPending
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is the back-office authorization level carried in identity tokens.
type UserRole string

const (
	// Full access including company settings
	RoleAdmin UserRole = "admin"

	// Manages applications and their references
	RoleManager UserRole = "manager"

	// Issues and downloads references
	RoleStaff UserRole = "staff"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level. Unknown roles rank lowest.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleManager:
		return 20
	case RoleStaff:
		return 10
	default:
		return 0
	}
}

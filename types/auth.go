package types

import (
	"forum-server/db"
)

type ServerAuth struct {
	AuthToken *db.AuthToken
	User      *db.User
}

type Permission string

const (
	PermissionPinThread      Permission = "pin_thread"
	PermissionModerateWall   Permission = "moderate_wall"
	PermissionManageSections Permission = "manage_sections"
)

var staffPermissions = map[Permission]bool{
	PermissionPinThread:      true,
	PermissionModerateWall:   true,
	PermissionManageSections: true,
}

// HasPermission is true for staff on every moderator permission and false for everyone else.
func (a *ServerAuth) HasPermission(permission Permission) bool {
	if a == nil || a.User == nil || !a.User.IsStaff {
		return false
	}
	return staffPermissions[permission]
}

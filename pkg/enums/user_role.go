package enums

import "fmt"

// UserRole represents an account permission level. Wardens can manage
// accounts and read the audit log; regular users run day-to-day inventory.
type UserRole string

const (
	UserRoleRegular UserRole = "regular"
	UserRoleWarden  UserRole = "warden"
)

var validUserRoles = []UserRole{
	UserRoleRegular,
	UserRoleWarden,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

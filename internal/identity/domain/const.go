// Package domain defines the identity and authorization domain models.
// Implements role and capability based access control: a closed role
// enumeration for coarse tiers and an open, per-user capability set for
// fine-grained grants.
package domain

import "strings"

// Role is one of a fixed, closed set of coarse access tiers.
type Role string

const (
	// RoleAdmin bypasses every capability check.
	RoleAdmin Role = "ADMIN"

	// RoleEditor is a regular staff tier; allowed actions come from the capability set.
	RoleEditor Role = "EDITOR"

	// RoleUser is the default tier; allowed actions come from the capability set.
	RoleUser Role = "USER"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// ParseRole converts a string to a Role, case-insensitively.
// Returns RoleUser and false for unknown values.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if role.Valid() {
		return role, true
	}
	return RoleUser, false
}

// Capability is a named, fine-grained grant of a specific action, independent
// of role. The set of valid names is open-ended: admins can mint new ones at
// runtime, validated at the assignment boundary.
type Capability string

const (
	// CreateBlogCapability allows creating blogs.
	CreateBlogCapability Capability = "CREATE_BLOG"

	// EditBlogCapability allows updating existing blogs.
	EditBlogCapability Capability = "EDIT_BLOG"

	// UpdateBlogCapability is an alias grant for blog updates kept for
	// compatibility with existing permission data; it is honored everywhere
	// EditBlogCapability is.
	UpdateBlogCapability Capability = "UPDATE_BLOG"

	// ReadBlogCapability allows reading blogs. Reads are public, so this is
	// only meaningful for future private-content tiers.
	ReadBlogCapability Capability = "READ_BLOG"

	// DeleteBlogCapability allows deleting blogs.
	DeleteBlogCapability Capability = "DELETE_BLOG"
)

// Valid reports whether the capability is a usable name: non-empty after
// trimming. Known constants and admin-minted names are both acceptable.
func (c Capability) Valid() bool {
	return strings.TrimSpace(string(c)) != ""
}

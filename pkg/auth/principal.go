// Package auth issues and verifies gymcore access tokens and carries the
// authenticated principal through the request context.
//
// A token payload is a discriminated union: it holds exactly one of
// {"gym":{"id":…}} or {"user":{"id":…,"gymId":…}}. Verification turns it
// into a Principal, which is either a GymPrincipal or a MemberPrincipal.
// Super-admin is not a token kind; it is a member whose stored role is
// RoleSuperAdmin, resolved by the rbac gate on every request.
package auth

// Role is the role tag stored on a member record.
type Role string

const (
	RoleUser       Role = "user"
	RoleGymAdmin   Role = "gym_admin"
	RoleSuperAdmin Role = "super_admin"
)

// MemberRoles lists every valid member role.
var MemberRoles = []Role{RoleUser, RoleGymAdmin, RoleSuperAdmin}

// IsValidRole reports whether r is one of MemberRoles.
func IsValidRole(r Role) bool {
	for _, v := range MemberRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Principal is the authenticated identity of a request. The only
// implementations are GymPrincipal and MemberPrincipal, so a type switch
// over both is exhaustive.
type Principal interface {
	// TenantID is the gym the principal belongs to.
	TenantID() uint
	// Kind is the login role reported to clients: "gym" or "user".
	Kind() string

	sealed()
}

// GymPrincipal is a gym account acting on its own tenant.
type GymPrincipal struct {
	ID uint
}

func (p GymPrincipal) TenantID() uint { return p.ID }
func (GymPrincipal) Kind() string     { return "gym" }
func (GymPrincipal) sealed()          {}

// MemberPrincipal is a member of one gym.
type MemberPrincipal struct {
	ID    uint
	GymID uint
	// Role is empty unless a gate looked it up in the store.
	Role Role
}

func (p MemberPrincipal) TenantID() uint { return p.GymID }
func (MemberPrincipal) Kind() string     { return "user" }
func (MemberPrincipal) sealed()          {}

package domain

// Role is a profile's role in the user directory.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleAdmin          Role = "admin"
	RoleSalesManager   Role = "sales_manager"
	RoleSalesExecutive Role = "sales_executive"
	RoleDriver         Role = "driver"
)

// ActorRole is the part a profile plays in the dispatch workflow.
type ActorRole string

const (
	ActorNone      ActorRole = ""
	ActorRequester ActorRole = "requester"
	ActorApprover  ActorRole = "approver"
	ActorDriver    ActorRole = "driver"
)

// Actor maps a directory role onto its workflow role.
// Roles the workflow does not know about map to ActorNone and are denied
// every operation.
func (r Role) Actor() ActorRole {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return ActorApprover
	case RoleSalesManager, RoleSalesExecutive:
		return ActorRequester
	case RoleDriver:
		return ActorDriver
	}
	return ActorNone
}

// Profile is a read-only view of a user directory entry.
type Profile struct {
	ID       ProfileID
	FullName string
	Role     Role
	Active   bool
}

// CanDrive reports whether p may be assigned to a visit.
func (p Profile) CanDrive() bool {
	return p.Active && p.Role == RoleDriver
}

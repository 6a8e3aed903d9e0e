package domain

// Role determines UI affordances and route access.
type Role string

const (
	RoleEntrepreneur Role = "entrepreneur"
	RoleInvestor     Role = "investor"
	RoleMentor       Role = "mentor"
	RoleAdmin        Role = "admin"
)

// Capability names one thing a role may do. Server middleware and clients
// both consult Role.Can so the role checks live in one place.
type Capability string

const (
	CapPitchIdeas      Capability = "ideas:pitch"
	CapFundIdeas       Capability = "ideas:fund"
	CapConnect         Capability = "connections:create"
	CapViewAdmin       Capability = "admin:view"
	CapModerateContent Capability = "admin:moderate"
)

var roleCapabilities = map[Role][]Capability{
	RoleEntrepreneur: {CapPitchIdeas, CapFundIdeas, CapConnect},
	RoleInvestor:     {CapPitchIdeas, CapFundIdeas, CapConnect},
	RoleMentor:       {CapPitchIdeas, CapFundIdeas, CapConnect},
	RoleAdmin:        {CapPitchIdeas, CapFundIdeas, CapConnect, CapViewAdmin, CapModerateContent},
}

// SelfAssignableRoles are the roles a user may pick at registration.
var SelfAssignableRoles = []Role{RoleEntrepreneur, RoleInvestor, RoleMentor}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the capabilities granted to the role.
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

package domain

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// DashboardScope selects which aggregate a role sees on the dashboard.
type DashboardScope int

const (
	DashboardPersonal DashboardScope = iota
	DashboardOwnEvents
	DashboardPlatform
)

// RolePolicy is everything the application decides from a role.
type RolePolicy struct {
	ManageEvents         bool
	AutoApproveEvents    bool
	NotifyAdminsOnCreate bool
	OverrideOwnership    bool
	AdministerPlatform   bool
	Dashboard            DashboardScope
}

var (
	// ManagerRoles and AdminRoles gate routes; both are read off rolePolicies.
	ManagerRoles = RolesWhere(func(p RolePolicy) bool { return p.ManageEvents })
	AdminRoles   = RolesWhere(func(p RolePolicy) bool { return p.AdministerPlatform })

	roles = []Role{RoleVolunteer, RoleManager, RoleAdmin}

	rolePolicies = map[Role]RolePolicy{
		RoleVolunteer: {
			Dashboard: DashboardPersonal,
		},
		RoleManager: {
			ManageEvents:         true,
			NotifyAdminsOnCreate: true,
			Dashboard:            DashboardOwnEvents,
		},
		RoleAdmin: {
			ManageEvents:       true,
			AutoApproveEvents:  true,
			OverrideOwnership:  true,
			AdministerPlatform: true,
			Dashboard:          DashboardPlatform,
		},
	}
)

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := rolePolicies[r]
	return r, ok
}

// RolesWhere lists the known roles whose policy satisfies pred, lowest privilege first.
func RolesWhere(pred func(RolePolicy) bool) []Role {
	var out []Role
	for _, r := range roles {
		if pred(rolePolicies[r]) {
			out = append(out, r)
		}
	}
	return out
}

// Policy returns the zero policy for unknown roles.
func (r Role) Policy() RolePolicy {
	return rolePolicies[r]
}

func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// CanActOn reports whether a user with this role may modify a resource owned by ownerID.
func (r Role) CanActOn(actorID, ownerID string) bool {
	return actorID == ownerID || r.Policy().OverrideOwnership
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   string
	Name string
	Role Role
}

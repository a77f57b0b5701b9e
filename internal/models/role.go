package models

type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleTeacher  Role = "TEACHER"
	RoleAdmin    Role = "ADMIN"
	RoleDirector Role = "DIRECTOR"
)

type CapabilitySet struct {
	CanAccessAdmin   bool `json:"can_access_admin"`
	CanManageUsers   bool `json:"can_manage_users"`
	CanManageRatings bool `json:"can_manage_ratings"`
	CanViewIncome    bool `json:"can_view_income"`
}

// RoleTable is built once at start-up and only read afterwards.
type RoleTable struct {
	caps map[Role]CapabilitySet
}

func NewRoleTable(caps map[Role]CapabilitySet) *RoleTable {
	t := &RoleTable{caps: make(map[Role]CapabilitySet, len(caps))}
	for role, set := range caps {
		t.caps[role] = set
	}
	return t
}

func DefaultRoleTable() *RoleTable {
	return NewRoleTable(map[Role]CapabilitySet{
		RoleStudent: {},
		RoleTeacher: {
			CanManageRatings: true,
		},
		RoleAdmin: {
			CanAccessAdmin:   true,
			CanManageUsers:   true,
			CanManageRatings: true,
		},
		RoleDirector: {
			CanAccessAdmin:   true,
			CanManageUsers:   true,
			CanManageRatings: true,
			CanViewIncome:    true,
		},
	})
}

func (t *RoleTable) Capabilities(role Role) (CapabilitySet, bool) {
	set, ok := t.caps[role]
	return set, ok
}

// CanAccessAdmin reports false for unknown or empty roles.
func (t *RoleTable) CanAccessAdmin(role Role) bool {
	set, ok := t.caps[role]
	return ok && set.CanAccessAdmin
}

func (t *RoleTable) Known(role Role) bool {
	_, ok := t.caps[role]
	return ok
}

package models

// Role is the job function an account registers with.
type Role string

const (
	RoleSecurityAnalyst   Role = "security_analyst"
	RoleAdministrator     Role = "administrator"
	RoleComplianceOfficer Role = "compliance_officer"
	RoleITManager         Role = "it_manager"
	RoleCISO              Role = "ciso"
	RoleOther             Role = "other"
)

var roleLabels = map[Role]string{
	RoleSecurityAnalyst:   "Security Analyst",
	RoleAdministrator:     "System Administrator",
	RoleComplianceOfficer: "Compliance Officer",
	RoleITManager:         "IT Manager",
	RoleCISO:              "Chief Information Security Officer",
	RoleOther:             "Other",
}

// Roles lists every role in presentation order.
func Roles() []Role {
	return []Role{
		RoleSecurityAnalyst,
		RoleAdministrator,
		RoleComplianceOfficer,
		RoleITManager,
		RoleCISO,
		RoleOther,
	}
}

// Valid reports whether r belongs to the fixed enumeration.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human readable name, or the raw value for unknown roles.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

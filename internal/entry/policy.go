package entry

import "pitwall/internal/models"

// Policy is the single source of truth for entry authorization. Handlers and
// operations never re-implement these checks.
type Policy struct {
	// MaintainerRoles may update entries they do not own (typically the
	// mechanical and electrical leads). Configurable per deployment.
	MaintainerRoles []string
}

func DefaultPolicy() Policy {
	return Policy{
		MaintainerRoles: []string{models.RoleMechanical, models.RoleElectrical},
	}
}

// CanModify reports whether the identity may update the entry: the captain,
// the current assignee, or any maintainer role.
func (p Policy) CanModify(id models.Identity, e models.Entry) bool {
	if id.Role == models.RoleCaptain {
		return true
	}
	if id.Username == e.Assignee {
		return true
	}
	for _, role := range p.MaintainerRoles {
		if id.Role == role {
			return true
		}
	}
	return false
}

// CanDelete is stricter than CanModify: only the captain or the current
// assignee may delete. Maintainer roles get update rights, not delete rights.
func (p Policy) CanDelete(id models.Identity, e models.Entry) bool {
	return id.Role == models.RoleCaptain || id.Username == e.Assignee
}

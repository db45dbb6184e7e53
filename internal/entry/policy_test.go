package entry

import (
	"testing"

	"pitwall/internal/models"
)

func TestPolicyTable(t *testing.T) {
	policy := DefaultPolicy()
	e := models.Entry{ID: 1, Section: "Electrical", Title: "Wire harness", Assignee: "elec"}

	cases := []struct {
		name      string
		identity  models.Identity
		canModify bool
		canDelete bool
	}{
		{"captain", models.Identity{Username: "captain", Role: models.RoleCaptain}, true, true},
		{"assignee", models.Identity{Username: "elec", Role: models.RoleElectrical}, true, true},
		{"maintainer non-assignee", models.Identity{Username: "mech", Role: models.RoleMechanical}, true, false},
		{"unprivileged", models.Identity{Username: "driver", Role: models.RoleDriver}, false, false},
		{"unknown role", models.Identity{Username: "guest", Role: "guest"}, false, false},
	}

	for _, tc := range cases {
		if got := policy.CanModify(tc.identity, e); got != tc.canModify {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.canModify)
		}
		if got := policy.CanDelete(tc.identity, e); got != tc.canDelete {
			t.Errorf("%s: CanDelete = %v, want %v", tc.name, got, tc.canDelete)
		}
	}
}

func TestPolicyCustomMaintainerRoles(t *testing.T) {
	policy := Policy{MaintainerRoles: []string{"logistics"}}
	e := models.Entry{Assignee: "elec"}

	if !policy.CanModify(models.Identity{Username: "log", Role: "logistics"}, e) {
		t.Error("Configured maintainer role must get modify rights")
	}
	if policy.CanModify(models.Identity{Username: "mech", Role: models.RoleMechanical}, e) {
		t.Error("Roles outside the configured set must not get modify rights")
	}
}

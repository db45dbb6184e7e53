package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pitwall/internal/models"
)

// rosterFile matches the optional users.yaml layout:
//
//	users:
//	  - username: captain
//	    password: captain123
//	    name: Team Captain
//	    role: captain
type rosterFile struct {
	Users []models.User `yaml:"users"`
}

// Defaults returns the built-in demo roster used when no roster file is
// configured or the document has no users field to heal from.
func Defaults() []models.User {
	return []models.User{
		{Username: "captain", Password: "captain123", Name: "Team Captain", Role: models.RoleCaptain},
		{Username: "elec", Password: "elec123", Name: "Electrical Lead", Role: models.RoleElectrical},
		{Username: "mech", Password: "mech123", Name: "Mechanical Lead", Role: models.RoleMechanical},
		{Username: "driver", Password: "driver123", Name: "Driver", Role: models.RoleDriver},
	}
}

// Load reads a YAML roster file. A missing or empty file is an error so the
// caller can decide to fall back to Defaults.
func Load(path string) ([]models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("roster %s: no users defined", path)
	}

	for _, u := range f.Users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("roster %s: user entries need username and password", path)
		}
	}

	return f.Users, nil
}

package models

// Known roles. The set is open: the roster file may introduce new ones.
const (
	RoleCaptain    = "captain"
	RoleMechanical = "mechanical"
	RoleElectrical = "electrical"
	RoleDriver     = "driver"
)

// User is a static roster account. Passwords are plaintext by design: the
// roster is a fixed demo list, not a real credential store.
type User struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
}

// Identity is the authenticated caller as resolved from a session.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

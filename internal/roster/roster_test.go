package roster

import (
	"os"
	"testing"
)

// Helper to create a temporary YAML roster for testing
func createTempRoster(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "users_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}
	return tmpfile.Name()
}

func TestDefaultsCoverAllRoles(t *testing.T) {
	users := Defaults()
	if len(users) != 4 {
		t.Fatalf("Expected 4 default users, got %d", len(users))
	}

	roles := map[string]bool{}
	for _, u := range users {
		if u.Username == "" || u.Password == "" {
			t.Errorf("Default user missing credentials: %+v", u)
		}
		roles[u.Role] = true
	}
	for _, role := range []string{"captain", "electrical", "mechanical", "driver"} {
		if !roles[role] {
			t.Errorf("Missing default role %q", role)
		}
	}
}

func TestLoadValidRoster(t *testing.T) {
	path := createTempRoster(t, `
users:
  - username: boss
    password: secret
    name: The Boss
    role: captain
  - username: intern
    password: hunter2
    name: Intern
    role: logistics
`)

	users, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Username != "boss" || users[0].Role != "captain" {
		t.Errorf("First user wrong: %+v", users[0])
	}
	if users[1].Role != "logistics" {
		t.Errorf("Custom roles must pass through, got %q", users[1].Role)
	}
}

func TestLoadErrors(t *testing.T) {
	// Case 1: File does not exist
	if _, err := Load("non_existent_users.yaml"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	// Case 2: Invalid YAML syntax
	badPath := createTempRoster(t, "users: [this: is: broken")
	if _, err := Load(badPath); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}

	// Case 3: Empty roster
	emptyPath := createTempRoster(t, "users: []")
	if _, err := Load(emptyPath); err == nil {
		t.Error("Expected error for empty roster, got nil")
	}

	// Case 4: User without a password
	noPwPath := createTempRoster(t, `
users:
  - username: ghost
    role: driver
`)
	if _, err := Load(noPwPath); err == nil {
		t.Error("Expected error for user without password, got nil")
	}
}

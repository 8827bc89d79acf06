// Package auth matches login credentials against the employee collection.
//
// Passwords are compared by exact string equality against the stored
// plaintext value, preserving the behavior of the system this replaces.
// Do not expose this beyond a trusted single-user deployment without
// replacing it with a hashed credential scheme.
package auth

import (
	"github.com/medivisit/backend/internal/models"
)

// Bootstrap admin account; always valid regardless of the employee
// collection contents.
const (
	BootstrapAdminID       = "admin"
	bootstrapAdminPassword = "admin123"
	bootstrapAdminName     = "관리자"
)

// Login resolves the credentials to a session user. The identifier may be
// an employee id or email. Returns false on any mismatch; there is no
// error taxonomy, a failed login is an ordinary result.
func Login(employees []models.Employee, idOrEmail, password string) (models.User, bool) {
	if idOrEmail == BootstrapAdminID && password == bootstrapAdminPassword {
		return models.User{ID: BootstrapAdminID, Username: bootstrapAdminName, IsAdmin: true}, true
	}

	for _, e := range employees {
		if e.ID != idOrEmail && (e.Email == "" || e.Email != idOrEmail) {
			continue
		}
		if e.Password != password {
			return models.User{}, false
		}
		return models.User{ID: e.ID, Username: e.Name, IsAdmin: false}, true
	}
	return models.User{}, false
}

// ChangePassword verifies the current plaintext password and returns the
// employee with the new one applied.
func ChangePassword(e models.Employee, current, next string) (models.Employee, bool) {
	if e.Password != current || next == "" {
		return e, false
	}
	e.Password = next
	return e, true
}

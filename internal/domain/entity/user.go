package entity

import "time"

// Roles a user can hold. New accounts always start as RoleUser; only the
// change-role flow (admin gated) moves a user between roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether s is a recognized role value.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never plaintext.
//
// Answer is the security-question answer, stored and compared in plaintext
// for compatibility with existing records. Known weakness; hashing it would
// break stored-data compatibility, so it is flagged rather than fixed here.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Answer    string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash never leaves the process: it is excluded from JSON.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	Username     string    `json:"username"`  // users.username
	PasswordHash string    `json:"-"`         // users.password_hash
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
}

// Principal is the identity resolved from a bearer token.  Write operations
// receive it explicitly; the catalog itself never looks it up.
type Principal struct {
	UserID   uint64 `json:"sub"`
	Username string `json:"username"`
}

// Minimum lengths, in characters, enforced when an account is created.
// Login does not apply them so that a short wrong password is simply
// rejected as invalid credentials.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Credentials is the body accepted by register and login.  The password
// limit is bcrypt's 72-byte input size.
type Credentials struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

package model

// UserID uniquely identifies a user across the system
type UserID string

// User is an authenticated identity
type User struct {
	ID    UserID
	Name  string
	Guest bool // issued by name only, expires with its token
}

// Account is a registered user with login credentials
// Stored separately from the user record so the hash never travels in a session
type Account struct {
	UserID       UserID
	Username     string
	PasswordHash string
}

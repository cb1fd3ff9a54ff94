package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash is the bcrypt digest written once at signup; it is
// never serialized to clients, so handlers define separate response types
// with explicit JSON tags instead of tagging this struct.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lowercased email address used as the login key.
//	Username     – display handle, 3–50 characters, not unique.
//	PasswordHash – bcrypt hashed password.
//	Name         – full name shown on the profile.
//	Phone        – optional contact number.
//	Address      – optional postal address.
//	Photo        – stored reference to the uploaded profile photo
//	               (relative /uploads path; handlers expand it to a URL).
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last mutation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	Phone        string    // users.phone
	Address      string    // users.address
	Photo        string    // users.photo
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

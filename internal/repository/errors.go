// Package repository defines error values reused across repositories.
// These sentinels let handlers distinguish failure scenarios without
// inspecting driver errors: ErrEmailExists maps to the signup/update
// conflict response, ErrNotFound to 404, ErrDuplicate to a second insert
// of the same list row, and ErrInvalidField to an update carrying a field
// outside the allow-list.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate the
// unique index on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a movie is added to a list it is
// already a member of.
var ErrDuplicate = errors.New("duplicate entry")

// ErrInvalidField is returned when a profile update names a field outside
// the fixed allow-list.  The whole update is rejected; no allowed field in
// the same request is applied.
var ErrInvalidField = errors.New("field not updatable")

// ErrInvalidCredentials is returned by credential verification for both an
// unknown email and a wrong password, so responses cannot be used to
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

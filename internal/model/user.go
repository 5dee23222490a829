// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account. The username is the identity — it is
// unique and immutable once created (it's the primary key in the database).
//
// WHY NO SEPARATE SESSION TABLE?
// This app keeps exactly one active session per user: the opaque bearer token
// and its expiry live directly on the user row. Logging in overwrites them,
// logging out clears them. That makes token lookup a single indexed SELECT
// and revocation a single UPDATE — no session bookkeeping to clean up.
//
// INVARIANT: Token and TokenExpired are either both set or both zero.
// A zero TokenExpired means "no active session". All writes that touch one
// touch the other (see the user repository).
type User struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialized
	Token        string    `json:"-"` // opaque bearer credential, empty when logged out
	TokenExpired time.Time `json:"-"` // zero when logged out
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasActiveToken reports whether the user holds a token that is still valid
// at the given instant. Expiry is exclusive: the token is rejected the moment
// now reaches the stored expiry.
func (u *User) HasActiveToken(now time.Time) bool {
	return u.Token != "" && u.TokenExpired.After(now)
}

// UserResponse is the public view of a User.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenResponse is returned by a successful login.
// ExpiredAt is epoch milliseconds, matching what clients store alongside the token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiredAt int64  `json:"expiredAt"`
}

// RegisterUserRequest is the payload for POST /api/users.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginUserRequest is the payload for POST /api/auth/login.
type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

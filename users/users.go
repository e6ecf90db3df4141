// Package users defines the identity record persisted for every registered
// account and the repository contract used to store it.
package users

import "time"

type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier, assigned by the repository on create
	Name         string    `json:"name,omitempty"`  // Display name
	Email        string    `json:"email,omitempty"` // Login key, unique across all users
	PasswordHash string    `json:"-"`               // Hashed version of the user's password - never serialize
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

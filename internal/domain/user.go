// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound indicates that the user is not found.
var ErrUserNotFound = errors.New("user not found")

// User holds user identity data. Users are seeded externally and never
// change once created.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"encoding/json"
	"errors"
)

// Role is the authorization level the backend grants a user.
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

var ErrIncompleteSession = errors.New("session requires both a token and a user")

// User is the profile the backend returns on login, registration and role
// upgrade. The client never edits it locally.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts both "id" and the Mongo style "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// CanSell reports whether the user may open the seller console.
func (u User) CanSell() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}

// Session is the identity held for the current browsing context.
// Token and User are either both set or both empty.
type Session struct {
	Token string
	User  *User
}

// Active reports whether the session carries a credential and a profile.
func (s Session) Active() bool {
	return s.Token != "" && s.User != nil
}

// CanSell is false for anonymous sessions.
func (s Session) CanSell() bool {
	return s.Active() && s.User.CanSell()
}

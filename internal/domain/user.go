package domain

import "strings"

// User is the user model. Name defaults to Login when empty or blank; the
// defaulting is applied by the stores at both create and update. Friends
// holds ids of users reachable via an outgoing friendship edge.
type User struct {
	ID       int    `json:"id" db:"id"`
	Email    string `json:"email" db:"email" validate:"required,email"`
	Login    string `json:"login" db:"login" validate:"required,login"`
	Name     string `json:"name" db:"name"`
	Birthday Date   `json:"birthday" db:"birthday" validate:"required,notfuture"`
	Friends  []int  `json:"friends" db:"-"`
}

// DefaultName replaces an empty or blank display name with the login.
func (u *User) DefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. PasswordHash never leaves the server.
type Account struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"user_name"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	DateCreated  time.Time `json:"date_created"`
}

// PublicAccount is the only representation of an Account sent to clients.
type PublicAccount struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"user_name"`
	FullName    string    `json:"full_name"`
	DateCreated time.Time `json:"date_created"`
}

// Public strips credentials from the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:          a.ID,
		UserName:    a.UserName,
		FullName:    a.FullName,
		DateCreated: a.DateCreated,
	}
}

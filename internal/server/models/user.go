package models

import "time"

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// UserProfile is the public view of a user; it never carries the hash.
type UserProfile struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	FullName string `json:"fullname"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, UserName: u.UserName, FullName: u.FullName}
}

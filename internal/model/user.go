package model

import (
	"time"
)

type UserRole string

const (
	Engineer UserRole = "engineer"
	Admin    UserRole = "admin"
)

// swagger:model User
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Password    string    `json:"-"`
	Role        UserRole  `json:"role"`
	Experience  int       `json:"experience"` // years of PD experience
	LastLogin   time.Time `json:"lastLogin"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}

package models

import "gorm.io/gorm"

// User mirrors the identity records issued by the external auth service.
// Account management (registration, verification, credentials) happens
// there; this table only exists so reads can resolve author references.
type User struct {
	gorm.Model
	Name  string `gorm:"column:name;size:255;not null" json:"name"`
	Email string `gorm:"column:email;size:255" json:"email,omitempty"`
}

// UserRef is the minimal projection attached to comments on read.
type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}

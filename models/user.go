package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email              string      `gorm:"uniqueIndex" json:"email"`
	Password           string      `json:"-"`
	FirstName          string      `json:"firstName"`
	LastName           string      `json:"lastName"`
	IsAdmin            bool        `gorm:"default:false" json:"isAdmin"`
	PreferredCountries StringSlice `gorm:"type:text" json:"preferredCountries"`
}

package models

import "time"

type Account struct {
	BaseModel

	Username    string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	FirstName   string     `json:"first_name" gorm:"size:150"`
	LastName    string     `json:"last_name" gorm:"size:150"`
	Email       string     `json:"email" gorm:"size:254"`
	Password    string     `json:"-"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (v Account) String() string {
	return v.Username
}

package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
	RoleClient = "client"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser aplica os defaults de preferência na criação.
func NewUser(name, email, passwordHash, phone, role string) User {
	if role == "" {
		role = RoleClient
	}
	return User{
		Name:               name,
		Email:              email,
		PasswordHash:       passwordHash,
		Phone:              phone,
		Role:               role,
		EmailNotifications: true,
	}
}

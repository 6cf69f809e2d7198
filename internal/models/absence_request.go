package models

import "time"

type AbsenceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type string `gorm:"size:20;not null" json:"type"`

	// Datas de calendário, gravadas como meia-noite UTC.
	// full_day
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	// specific_hours
	Date      *time.Time `gorm:"type:date" json:"date"`
	StartTime *string    `gorm:"size:5" json:"start_time"`
	EndTime   *string    `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	ReviewerID      *uint      `json:"reviewer_id"`
	ReviewComment   string     `gorm:"size:255" json:"review_comment"`
	RejectionReason string     `gorm:"size:255" json:"rejection_reason"`
	RespondedAt     *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

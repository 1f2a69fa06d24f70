package models

import (
	"time"
)

type Reservation struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	// No FK constraint on TableID: admins may delete a reserved table,
	// leaving the row orphaned until the owner cancels.
	TableID         uint      `gorm:"not null;index"`
	ReservationTime time.Time `gorm:"not null"`
}

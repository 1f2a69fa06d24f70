package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey"`
	TableNumber int       `gorm:"unique;not null"`
	Capacity    int       `gorm:"not null"`
	IsReserved  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableInfo is the projection returned to diners, internal ids stay internal.
type TableInfo struct {
	TableNumber int `json:"table_number"`
	Capacity    int `json:"capacity"`
}

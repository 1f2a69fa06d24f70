package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/models"
)

// Seed inserts the initial principals and tables on first boot. Each store is
// only seeded while empty, so restarts never duplicate rows.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		admin, err := seedUser("admin", "admin123", models.RoleAdmin)
		if err != nil {
			return err
		}
		user, err := seedUser("user", "user123", models.RoleUser)
		if err != nil {
			return err
		}
		if err := db.Create([]*models.User{admin, user}).Error; err != nil {
			return err
		}
	}

	var tableCount int64
	if err := db.Model(&models.Table{}).Count(&tableCount).Error; err != nil {
		return err
	}
	if tableCount == 0 {
		tables := []models.Table{
			{TableNumber: 1, Capacity: 4},
			{TableNumber: 2, Capacity: 2},
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedUser(username, password string, role models.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
	}, nil
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

var (
	// ErrTableNotAvailable covers both an unknown table number and a table
	// that is already reserved. Diners see one outcome for both.
	ErrTableNotAvailable  = errors.New("table not available")
	ErrNoReservationFound = errors.New("no reservation found for this user")
	ErrTableNotFound      = errors.New("table not found")
	ErrAlreadyReserved    = errors.New("user already has an active reservation")
)

// ReservationService owns every transition of the table state machine
// (free -> reserved -> free). All mutations of the reserved flag and the
// reservation rows go through here, inside a single transaction each.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// ListAvailable returns the free tables as number/capacity pairs.
func (rs *ReservationService) ListAvailable() ([]models.TableInfo, error) {
	var tables []models.TableInfo
	err := rs.DB.Model(&models.Table{}).
		Where("is_reserved = ?", false).
		Order("table_number").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Reserve books the table with the given number for the user. The reserved
// flag is flipped with a conditional update, so of two concurrent calls for
// the same table exactly one sees a row change; the other gets
// ErrTableNotAvailable. Creating the reservation row happens in the same
// transaction, either both apply or neither does.
func (rs *ReservationService) Reserve(userID uint, tableNumber int) (*models.Reservation, error) {
	var reservation models.Reservation

	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		var held int64
		if err := tx.Model(&models.Reservation{}).
			Where("user_id = ?", userID).
			Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return ErrAlreadyReserved
		}

		var table models.Table
		if err := tx.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotAvailable
			}
			return err
		}

		// Check-and-set: only a currently free row is updated.
		res := tx.Model(&models.Table{}).
			Where("id = ? AND is_reserved = ?", table.ID, false).
			Update("is_reserved", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTableNotAvailable
		}

		reservation = models.Reservation{
			UserID:          userID,
			TableID:         table.ID,
			ReservationTime: time.Now(),
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %d reserved by user %d", tableNumber, userID)
	return &reservation, nil
}

// Cancel releases the user's active reservation. If the reserved table was
// deleted in the meantime the dangling reservation row is removed, but the
// caller still gets ErrTableNotFound.
func (rs *ReservationService) Cancel(userID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	orphaned := false

	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoReservationFound
			}
			return err
		}

		var table models.Table
		if err := tx.First(&table, reservation.TableID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			orphaned = true
			return tx.Delete(&models.Reservation{}, reservation.ID).Error
		}

		if err := tx.Model(&models.Table{}).
			Where("id = ?", table.ID).
			Update("is_reserved", false).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reservation{}, reservation.ID).Error
	})
	if err != nil {
		return nil, err
	}
	if orphaned {
		utils.InfoLogger.Printf("Removed orphaned reservation %d for user %d", reservation.ID, userID)
		return nil, ErrTableNotFound
	}

	utils.InfoLogger.Printf("Reservation %d canceled by user %d", reservation.ID, userID)
	return &reservation, nil
}

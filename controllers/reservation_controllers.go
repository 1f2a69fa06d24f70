package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// GetAvailableTables -> free tables as {table_number, capacity}
func (rc *ReservationController) GetAvailableTables(c *gin.Context) {
	tables, err := rc.Service.ListAvailable()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

// ReserveTable -> book the table named in the path (POST /tables/reserve/table3)
func (rc *ReservationController) ReserveTable(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	ref := c.Param("table_ref")
	if !strings.HasPrefix(ref, "table") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table reference"))
		return
	}
	tableNumber, err := strconv.Atoi(strings.TrimPrefix(ref, "table"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table reference"))
		return
	}

	if _, err := rc.Service.Reserve(userID, tableNumber); err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotAvailable):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrAlreadyReserved):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table reserved successfully", nil)
}

// CancelReservation -> release the caller's active reservation
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if _, err := rc.Service.Cancel(userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNoReservationFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation canceled successfully", nil)
}

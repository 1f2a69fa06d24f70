package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

var (
	ErrInvalidCapacity      = errors.New("capacity must be a positive number")
	ErrDuplicateTableNumber = errors.New("table number already exists")
)

// TableController serves the admin inventory operations. The reserved flag
// itself is never mutated here, that belongs to the ReservationService.
type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> full inventory, including reserved state
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> add a table to the inventory
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber int `json:"table_number" binding:"required"`
		Capacity    int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table number must be a positive number"))
		return
	}
	if req.Capacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidCapacity)
		return
	}

	var existing int64
	if err := tc.DB.Model(&models.Table{}).Where("table_number = ?", req.TableNumber).Count(&existing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateTableNumber)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTableCapacity -> change a table's capacity
func (tc *TableController) UpdateTableCapacity(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Capacity *int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid data, 'capacity' required"))
		return
	}

	if *body.Capacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidCapacity)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	table.Capacity = *body.Capacity
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d capacity changed to %d", table.ID, table.Capacity)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", gin.H{
		"table_id": table.ID,
	})
}

// DeleteTable -> remove a table from the inventory. Deleting a reserved
// table is allowed and leaves its reservation orphaned until canceled.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if table.IsReserved {
		utils.InfoLogger.Printf("Reserved table %d deleted, its reservation is now orphaned", table.ID)
	} else {
		utils.InfoLogger.Printf("Table %d deleted", table.ID)
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", gin.H{
		"table_id": table.ID,
	})
}

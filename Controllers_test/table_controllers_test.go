package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

func setupTestDBForTables() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.Reservation{}); err != nil {
		panic(err)
	}
	return db
}

// setupAdminRouter mounts the inventory routes behind the real auth
// middleware and admin role gate.
func setupAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)

	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PUT("/tables/:table_id", tableCtrl.UpdateTableCapacity)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	}
	return router
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(1, models.RoleAdmin)
	assert.NoError(t, err)
	return token
}

func authedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateAndListTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	req := authedRequest(t, "POST", "/admin/tables", map[string]int{
		"table_number": 7,
		"capacity":     4,
	}, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = authedRequest(t, "GET", "/admin/tables", nil, token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	body := map[string]int{"table_number": 3, "capacity": 2}

	req := authedRequest(t, "POST", "/admin/tables", body, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = authedRequest(t, "POST", "/admin/tables", body, token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateTableInvalidCapacity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	req := authedRequest(t, "POST", "/admin/tables", map[string]int{
		"table_number": 3,
		"capacity":     -2,
	}, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTableCapacity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	table := models.Table{TableNumber: 1, Capacity: 4}
	assert.NoError(t, db.Create(&table).Error)

	url := "/admin/tables/" + strconv.Itoa(int(table.ID))
	req := authedRequest(t, "PUT", url, map[string]int{"capacity": 6}, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Table
	assert.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, 6, reloaded.Capacity)
}

func TestUpdateTableMissingCapacity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	table := models.Table{TableNumber: 1, Capacity: 4}
	assert.NoError(t, db.Create(&table).Error)

	url := "/admin/tables/" + strconv.Itoa(int(table.ID))
	req := authedRequest(t, "PUT", url, map[string]string{"note": "no capacity here"}, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTableNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	req := authedRequest(t, "PUT", "/admin/tables/999", map[string]int{"capacity": 6}, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)
	token := adminToken(t)

	table := models.Table{TableNumber: 1, Capacity: 4}
	assert.NoError(t, db.Create(&table).Error)

	url := "/admin/tables/" + strconv.Itoa(int(table.ID))
	req := authedRequest(t, "DELETE", url, nil, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Table{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	req = authedRequest(t, "DELETE", url, nil, token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesForbiddenForUserRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupAdminRouter(db)

	userToken, err := utils.GenerateToken(2, models.RoleUser)
	assert.NoError(t, err)

	req := authedRequest(t, "POST", "/admin/tables", map[string]int{
		"table_number": 9,
		"capacity":     2,
	}, userToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Denied before any write: inventory stays empty.
	var count int64
	assert.NoError(t, db.Model(&models.Table{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

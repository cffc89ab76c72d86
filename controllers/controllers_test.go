package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-kitchen/database"
	"github.com/yeremiapane/restaurant-kitchen/middlewares"
	"github.com/yeremiapane/restaurant-kitchen/models"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

type apiResponse struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// setupTestRouter mounts the controllers without token checks; every request
// acts as the cook whose account id is userID.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *models.Cook) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	cooks := services.NewCookService(db)
	cooks.HashCost = bcrypt.MinCost
	years := 4
	me, err := cooks.Create(context.Background(), services.CookCreateInput{
		Username:          "me",
		Password1:         "correct-horse",
		Password2:         "correct-horse",
		YearsOfExperience: &years,
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middlewares.ContextUserID, me.UserID)
		c.Next()
	})

	dishTypeCtrl := NewDishTypeController(db)
	dishCtrl := NewDishController(db)
	cookCtrl := &CookController{Service: cooks}
	homeCtrl := NewHomeController(db)
	authCtrl := &AuthController{Auth: services.NewAuthService(db), Cooks: cooks}

	r.GET("/", homeCtrl.Index)
	r.GET("/me", authCtrl.Profile)
	r.GET("/dishtypes", dishTypeCtrl.GetAllDishTypes)
	r.POST("/dishtypes", dishTypeCtrl.CreateDishType)
	r.GET("/dishtypes/:id", dishTypeCtrl.GetDishTypeByID)
	r.PUT("/dishtypes/:id", dishTypeCtrl.UpdateDishType)
	r.DELETE("/dishtypes/:id", dishTypeCtrl.DeleteDishType)
	r.GET("/dishes", dishCtrl.GetAllDishes)
	r.POST("/dishes", dishCtrl.CreateDish)
	r.GET("/dishes/:id", dishCtrl.GetDishByID)
	r.PUT("/dishes/:id", dishCtrl.UpdateDish)
	r.DELETE("/dishes/:id", dishCtrl.DeleteDish)
	r.POST("/dishes/:id/toggle-assign", dishCtrl.ToggleAssign)
	r.GET("/cooks", cookCtrl.GetAllCooks)
	r.POST("/cooks", cookCtrl.CreateCook)
	r.GET("/cooks/:id", cookCtrl.GetCookByID)
	r.PUT("/cooks/:id", cookCtrl.UpdateCookExperience)
	r.DELETE("/cooks/:id", cookCtrl.DeleteCook)
	r.POST("/login", authCtrl.Login)

	return r, db, me
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func seedDishType(t *testing.T, db *gorm.DB, name string) *models.DishType {
	t.Helper()
	dt := &models.DishType{Name: name}
	require.NoError(t, db.Create(dt).Error)
	return dt
}

func seedDish(t *testing.T, db *gorm.DB, name string, typeID uint) *models.Dish {
	t.Helper()
	d := &models.Dish{Name: name, Description: name + " description", Price: decimal.RequireFromString("9.99"), DishTypeID: typeID}
	require.NoError(t, db.Omit("Cooks").Create(d).Error)
	return d
}

func TestDishTypeCRUD(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w, resp := performRequest(t, r, http.MethodPost, "/dishtypes", gin.H{"name": "Soup"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Status)
	var created models.DishType
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Soup", created.Name)
	path := "/dishtypes/" + strconv.Itoa(int(created.ID))

	w, resp = performRequest(t, r, http.MethodPost, "/dishtypes", gin.H{"name": "Soup"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "name")

	w, resp = performRequest(t, r, http.MethodPut, path, gin.H{"name": "Soups"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.DishType
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Soups", updated.Name)

	w, _ = performRequest(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDishTypeListPaginationAndSearch(t *testing.T) {
	r, db, _ := setupTestRouter(t)
	for _, name := range []string{"Soup", "Salad", "Dessert", "Starter", "Side", "Sauce", "Drink"} {
		seedDishType(t, db, name)
	}

	w, resp := performRequest(t, r, http.MethodGet, "/dishtypes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page services.Page[models.DishType]
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Len(t, page.Items, services.DishTypePageSize)
	assert.Equal(t, 2, page.NumPages)
	assert.Equal(t, int64(7), page.Total)

	w, resp = performRequest(t, r, http.MethodGet, "/dishtypes?page=last", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 2)

	w, resp = performRequest(t, r, http.MethodGet, "/dishtypes?name=S", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(6), page.Total)

	w, _ = performRequest(t, r, http.MethodGet, "/dishtypes?page=3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = performRequest(t, r, http.MethodGet, "/dishtypes?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "page")
}

func TestCreateDishValidation(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w, resp := performRequest(t, r, http.MethodPost, "/dishes", gin.H{
		"name":         "",
		"description":  "",
		"price":        "1234.5",
		"dish_type_id": 999,
		"cook_ids":     []uint{404},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Status)
	for _, field := range []string{"name", "description", "price", "dish_type_id", "cook_ids"} {
		assert.Contains(t, resp.Errors, field)
	}
}

func TestCreateDishMalformedBody(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/dishes", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDishCRUDWithCooks(t *testing.T) {
	r, db, me := setupTestRouter(t)
	dt := seedDishType(t, db, "Main")

	w, resp := performRequest(t, r, http.MethodPost, "/dishes", gin.H{
		"name":         "Stew",
		"description":  "Slow cooked",
		"price":        "12.50",
		"dish_type_id": dt.ID,
		"cook_ids":     []uint{me.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, string(resp.Data))
	var dish models.Dish
	require.NoError(t, json.Unmarshal(resp.Data, &dish))
	assert.True(t, dish.Price.Equal(decimal.RequireFromString("12.5")))
	path := "/dishes/" + strconv.Itoa(int(dish.ID))

	w, resp = performRequest(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &dish))
	require.NotNil(t, dish.DishType)
	assert.Equal(t, "Main", dish.DishType.Name)
	require.Len(t, dish.Cooks, 1)
	assert.Equal(t, me.ID, dish.Cooks[0].ID)

	w, resp = performRequest(t, r, http.MethodPut, path, gin.H{
		"name":         "Stew",
		"description":  "Slow cooked overnight",
		"price":        "13",
		"dish_type_id": dt.ID,
		"cook_ids":     []uint{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Dish
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Slow cooked overnight", updated.Description)
	assert.Empty(t, updated.Cooks)

	w, _ = performRequest(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = performRequest(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAssign(t *testing.T) {
	r, db, me := setupTestRouter(t)
	dt := seedDishType(t, db, "Main")
	dish := seedDish(t, db, "Stew", dt.ID)
	path := "/dishes/" + strconv.Itoa(int(dish.ID)) + "/toggle-assign"

	w, resp := performRequest(t, r, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a services.Assignment
	require.NoError(t, json.Unmarshal(resp.Data, &a))
	assert.Equal(t, services.Assignment{DishID: dish.ID, CookID: me.ID, Assigned: true}, a)

	w, resp = performRequest(t, r, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &a))
	assert.False(t, a.Assigned)

	w, _ = performRequest(t, r, http.MethodPost, "/dishes/9999/toggle-assign", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadIDIsNotFound(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	for _, path := range []string{"/dishes/abc", "/dishes/0", "/cooks/-1", "/dishtypes/9999"} {
		w, resp := performRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.False(t, resp.Status)
	}
}

func TestCookCreateAndExperience(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w, resp := performRequest(t, r, http.MethodPost, "/cooks", gin.H{
		"username":            "chef",
		"password1":           "12345678",
		"password2":           "12345678",
		"years_of_experience": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "password2")
	assert.Contains(t, resp.Errors, "years_of_experience")

	w, resp = performRequest(t, r, http.MethodPost, "/cooks", gin.H{
		"username":            "chef",
		"password1":           "correct-horse",
		"password2":           "correct-horse",
		"first_name":          "Ana",
		"years_of_experience": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var cook models.Cook
	require.NoError(t, json.Unmarshal(resp.Data, &cook))
	assert.Equal(t, "chef", cook.User.Username)
	assert.NotContains(t, string(resp.Data), "correct-horse")
	path := "/cooks/" + strconv.Itoa(int(cook.ID))

	w, resp = performRequest(t, r, http.MethodPut, path, gin.H{"years_of_experience": 60})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"value exceeds plausible maximum"}, resp.Errors["years_of_experience"])

	w, resp = performRequest(t, r, http.MethodPut, path, gin.H{"years_of_experience": 12})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &cook))
	require.NotNil(t, cook.YearsOfExperience)
	assert.Equal(t, 12, *cook.YearsOfExperience)

	w, resp = performRequest(t, r, http.MethodGet, "/cooks?username=CHE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page services.Page[models.Cook]
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, cook.ID, page.Items[0].ID)

	w, _ = performRequest(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = performRequest(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomeAndProfile(t *testing.T) {
	r, db, me := setupTestRouter(t)
	dt := seedDishType(t, db, "Main")
	seedDish(t, db, "Stew", dt.ID)

	w, resp := performRequest(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary services.HomeSummary
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	assert.Equal(t, services.HomeSummary{NumCooks: 1, NumDishes: 1, NumDishTypes: 1}, summary)

	w, resp = performRequest(t, r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cook models.Cook
	require.NoError(t, json.Unmarshal(resp.Data, &cook))
	assert.Equal(t, me.ID, cook.ID)
}

func TestLogin(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	utils.ConfigureJWT("controllers-test-secret", 0)

	w, resp := performRequest(t, r, http.MethodPost, "/login", gin.H{"username": "me", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "token")

	w, resp = performRequest(t, r, http.MethodPost, "/login", gin.H{"username": "me", "password": "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Status)
}

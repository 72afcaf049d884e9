package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"lavka/internal/handlers"
	"lavka/internal/middleware"
	"lavka/internal/models"
	"lavka/internal/repositories"
	"lavka/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testJWTSecret = "test_jwt_secret"
	testSalt      = "test_salt"
)

var dbCounter int64

// testEnv is a fully wired app over an in-memory SQLite database, seeded
// with one user per role.
type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService

	admin, manager, buyer, buyer2                  *models.User
	adminToken, managerToken, buyerToken, buyer2Token string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret, testSalt, time.Hour)
	userService := services.NewUserService(userRepo, authService)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, productRepo)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	authOptional := middleware.AuthOptional(authService)

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewUserHandler(userService).RegisterRoutes(api, authRequired)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, authRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(api, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authRequired)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, authRequired, authOptional)

	env := &testEnv{app: app, db: db, auth: authService}
	env.admin, env.adminToken = env.seedUser(t, userService, "admin", "admin@example.com", models.RoleAdmin)
	env.manager, env.managerToken = env.seedUser(t, userService, "manager", "manager@example.com", models.RoleManager)
	env.buyer, env.buyerToken = env.seedUser(t, userService, "buyer", "buyer@example.com", models.RoleBuyer)
	env.buyer2, env.buyer2Token = env.seedUser(t, userService, "buyer2", "buyer2@example.com", models.RoleBuyer)
	return env
}

func (e *testEnv) seedUser(t *testing.T, userService *services.UserService, username, email string, role models.UserRole) (*models.User, string) {
	t.Helper()
	user, err := userService.Create(services.UserInput{
		Username: username,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	token, err := e.auth.IssueToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) createCategory(t *testing.T, name string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/categories/", e.adminToken, fiber.Map{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)
	return category.ID
}

func (e *testEnv) createProduct(t *testing.T, name, price, categoryID string, stock int) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/products/", e.managerToken, fiber.Map{
		"name":        name,
		"price":       price,
		"category_id": categoryID,
		"description": "integration test product",
		"stock":       stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product handlers.ProductResponse
	decodeBody(t, resp, &product)
	return product.ID
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestLoginAndMe(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/login", "", fiber.Map{
		"email":    "buyer@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, resp, &login)
	assert.Equal(t, "bearer", login.TokenType)
	assert.NotEmpty(t, login.AccessToken)

	resp = env.request(t, http.MethodGet, "/api/users/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, env.buyer.ID, me.ID)
	assert.Equal(t, models.RoleBuyer, me.Role)

	// Wrong password and unknown email both come back as the same 401.
	resp = env.request(t, http.MethodPost, "/api/login", "", fiber.Map{
		"email":    "buyer@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/login", "", fiber.Map{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticationFailures(t *testing.T) {
	env := setupEnv(t)

	// No token.
	resp := env.request(t, http.MethodGet, "/api/orders/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token.
	resp = env.request(t, http.MethodGet, "/api/orders/", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": env.buyer.ID,
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	resp = env.request(t, http.MethodGet, "/api/orders/", expiredString, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Token has expired", body.Message)

	// Token of a deleted user.
	ghostToken := env.buyer2Token
	resp = env.request(t, http.MethodDelete, "/api/users/"+env.buyer2.ID, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/orders/", ghostToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMatrix(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Laptops")

	// Category writes are admin only.
	resp := env.request(t, http.MethodPost, "/api/categories/", env.managerToken, fiber.Map{"name": "Phones"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/categories/", env.buyerToken, fiber.Map{"name": "Phones"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Product writes are manager or admin.
	productBody := fiber.Map{"name": "Laptop", "price": "999.99", "category_id": categoryID, "stock": 5}
	resp = env.request(t, http.MethodPost, "/api/products/", env.buyerToken, productBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/products/", env.managerToken, productBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// User administration is admin only, /me is open to any authenticated
	// caller.
	resp = env.request(t, http.MethodGet, "/api/users/", env.managerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/users/", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/users/me", env.buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Reads of categories and products are public.
	resp = env.request(t, http.MethodGet, "/api/categories/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderLifecycle(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Electronics")
	phoneID := env.createProduct(t, "Phone", "799.99", categoryID, 10)
	headsetID := env.createProduct(t, "Headset", "279.99", categoryID, 20)

	resp := env.request(t, http.MethodPost, "/api/orders/", env.buyerToken, fiber.Map{
		"items": []fiber.Map{
			{"product_id": phoneID, "quantity": 1},
			{"product_id": headsetID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order handlers.OrderResponse
	decodeBody(t, resp, &order)
	assert.Equal(t, env.buyer.ID, order.UserID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Amount.Equal(decimal.RequireFromString("1359.97")),
		"amount was %s", order.Amount)

	// A later price change must not alter the stored snapshot or amount.
	resp = env.request(t, http.MethodPut, "/api/products/"+phoneID, env.managerToken, fiber.Map{"price": "1099.99"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/orders/"+order.ID, env.buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reread handlers.OrderResponse
	decodeBody(t, resp, &reread)
	assert.True(t, reread.Amount.Equal(decimal.RequireFromString("1359.97")))
	for _, item := range reread.Items {
		if item.ProductID == phoneID {
			assert.True(t, item.PriceAtOrder.Equal(decimal.RequireFromString("799.99")))
		}
	}

	// Ownership: another buyer is rejected, a manager is not.
	resp = env.request(t, http.MethodGet, "/api/orders/"+order.ID, env.buyer2Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/orders/"+order.ID, env.managerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Status changes are manager/admin only and unrestricted between
	// known statuses.
	resp = env.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", env.buyerToken, fiber.Map{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", env.managerToken, fiber.Map{"status": "delivered"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", env.managerToken, fiber.Map{"status": "pending"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var repended handlers.OrderResponse
	decodeBody(t, resp, &repended)
	assert.Equal(t, models.OrderPending, repended.Status)
	resp = env.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", env.managerToken, fiber.Map{"status": "misplaced"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Buyers only see their own orders, managers see all.
	resp = env.request(t, http.MethodGet, "/api/orders/", env.buyer2Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buyer2Orders []handlers.OrderResponse
	decodeBody(t, resp, &buyer2Orders)
	assert.Empty(t, buyer2Orders)
	resp = env.request(t, http.MethodGet, "/api/orders/user/"+env.buyer.ID, env.managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buyerOrders []handlers.OrderResponse
	decodeBody(t, resp, &buyerOrders)
	assert.Len(t, buyerOrders, 1)

	// Deletion is manager/admin only and cascades to items.
	resp = env.request(t, http.MethodDelete, "/api/orders/"+order.ID, env.buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodDelete, "/api/orders/"+order.ID, env.managerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/orders/"+order.ID, env.managerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var leftover int64
	require.NoError(t, env.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestOrderCreationIsAtomic(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Electronics")
	productID := env.createProduct(t, "Phone", "100.00", categoryID, 10)

	resp := env.request(t, http.MethodPost, "/api/orders/", env.buyerToken, fiber.Map{
		"items": []fiber.Map{
			{"product_id": productID, "quantity": 1},
			{"product_id": "3f0c726d-12a5-4f7f-bb39-9e8f6a1b2c3d", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No order and no items were persisted.
	var orders, items int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	// Zero quantity is rejected at the boundary.
	resp = env.request(t, http.MethodPost, "/api/orders/", env.buyerToken, fiber.Map{
		"items": []fiber.Map{{"product_id": productID, "quantity": 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProductPaginationAndFilters(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Gadgets")
	otherCategoryID := env.createCategory(t, "Spares")
	for i := 0; i < 25; i++ {
		stock := 0
		if i%2 == 0 {
			stock = 5
		}
		env.createProduct(t, fmt.Sprintf("Widget %02d", i), fmt.Sprintf("%d.00", 10+i), categoryID, stock)
	}
	env.createProduct(t, "Sprocket", "5.00", otherCategoryID, 1)

	// page=1,limit=10 over 25 matching products: total 25, pages 3, 10 items.
	resp := env.request(t, http.MethodGet, "/api/products/?name=widget&page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page handlers.ProductPageResponse
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(3), page.Pages)
	assert.Len(t, page.Items, 10)

	resp = env.request(t, http.MethodGet, "/api/products/?name=widget&page=3&limit=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 3, page.Page)

	// Category filter.
	resp = env.request(t, http.MethodGet, "/api/products/?category=Spares", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Sprocket", page.Items[0].Name)
	assert.Equal(t, "Spares", page.Items[0].CategoryName)

	// Stock filter: 13 of the 25 widgets have stock.
	resp = env.request(t, http.MethodGet, "/api/products/?name=widget&in_stock=true&limit=100", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(13), page.Total)

	// Price range.
	resp = env.request(t, http.MethodGet, "/api/products/?min_price=10&max_price=14&limit=100", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(5), page.Total)

	// Inverted price range is a validation failure.
	resp = env.request(t, http.MethodGet, "/api/products/?min_price=100&max_price=10", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Sorting by price descending.
	resp = env.request(t, http.MethodGet, "/api/products/?name=widget&sort_by=price&sort_order=desc&limit=100", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, "Widget 24", page.Items[0].Name)
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Audio")
	productID := env.createProduct(t, "Headphones", "279.99", categoryID, 60)

	resp := env.request(t, http.MethodPut, "/api/products/"+productID, env.managerToken, fiber.Map{
		"name": "Headphones Pro",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product handlers.ProductResponse
	decodeBody(t, resp, &product)
	assert.Equal(t, "Headphones Pro", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("279.99")))
	assert.Equal(t, 60, product.Stock)
	assert.Equal(t, categoryID, product.CategoryID)
	assert.Equal(t, "integration test product", product.Description)
}

func TestReviewVisibilityAndRating(t *testing.T) {
	env := setupEnv(t)
	categoryID := env.createCategory(t, "Audio")
	productID := env.createProduct(t, "Speaker", "150.00", categoryID, 5)

	postReview := func(token string, rating int) handlers.ReviewResponse {
		resp := env.request(t, http.MethodPost, "/api/reviews/products/"+productID, token, fiber.Map{
			"rating": rating,
			"text":   "long enough review text",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var review handlers.ReviewResponse
		decodeBody(t, resp, &review)
		assert.Equal(t, models.ReviewPending, review.Status)
		return review
	}
	first := postReview(env.buyerToken, 5)
	second := postReview(env.buyer2Token, 3)
	third := postReview(env.buyerToken, 1)

	approve := func(id string) {
		resp := env.request(t, http.MethodPatch, "/api/reviews/"+id+"/status", env.managerToken, fiber.Map{"status": "approved"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	approve(first.ID)
	approve(second.ID)
	// third stays pending.

	// Anonymous listing sees only the approved reviews.
	resp := env.request(t, http.MethodGet, "/api/reviews/?product_id="+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var visible []handlers.ReviewResponse
	decodeBody(t, resp, &visible)
	assert.Len(t, visible, 2)

	// A manager sees every status.
	resp = env.request(t, http.MethodGet, "/api/reviews/?product_id="+productID, env.managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []handlers.ReviewResponse
	decodeBody(t, resp, &all)
	assert.Len(t, all, 3)

	// The pending review exists for its author but not for another buyer.
	resp = env.request(t, http.MethodGet, "/api/reviews/"+third.ID, env.buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/reviews/"+third.ID, env.buyer2Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Rating: {5, 3} approved and {1} pending gives 4, both through the
	// aggregate (single product read) and the fold (listing).
	resp = env.request(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product handlers.ProductResponse
	decodeBody(t, resp, &product)
	assert.True(t, product.Rating.Equal(decimal.RequireFromString("4")),
		"rating was %s", product.Rating)

	resp = env.request(t, http.MethodGet, "/api/products/?name=Speaker", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page handlers.ProductPageResponse
	decodeBody(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Rating.Equal(product.Rating))

	// Only the author or a privileged caller may edit or delete.
	resp = env.request(t, http.MethodPut, "/api/reviews/"+first.ID, env.buyer2Token, fiber.Map{"rating": 4})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodDelete, "/api/reviews/"+first.ID, env.buyer2Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// An author edit sends the review back to pending, dropping it from
	// the rating until re-approved.
	resp = env.request(t, http.MethodPut, "/api/reviews/"+first.ID, env.buyerToken, fiber.Map{"rating": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited handlers.ReviewResponse
	decodeBody(t, resp, &edited)
	assert.Equal(t, models.ReviewPending, edited.Status)
	resp = env.request(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &product)
	assert.True(t, product.Rating.Equal(decimal.RequireFromString("3")),
		"rating was %s", product.Rating)
}

func TestUserAdministration(t *testing.T) {
	env := setupEnv(t)

	// Duplicate email is rejected with 400.
	resp := env.request(t, http.MethodPost, "/api/users/", env.adminToken, fiber.Map{
		"username": "copycat",
		"email":    "buyer@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Partial update touches only the supplied field.
	resp = env.request(t, http.MethodPut, "/api/users/"+env.buyer.ID, env.adminToken, fiber.Map{
		"username": "renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "buyer@example.com", updated.Email)
	assert.Equal(t, models.RoleBuyer, updated.Role)

	// Deleting a user cascades to their orders.
	categoryID := env.createCategory(t, "Electronics")
	productID := env.createProduct(t, "Phone", "100.00", categoryID, 10)
	resp = env.request(t, http.MethodPost, "/api/orders/", env.buyerToken, fiber.Map{
		"items": []fiber.Map{{"product_id": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order handlers.OrderResponse
	decodeBody(t, resp, &order)

	resp = env.request(t, http.MethodDelete, "/api/users/"+env.buyer.ID, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/orders/"+order.ID, env.managerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A missing user id is 404.
	resp = env.request(t, http.MethodGet, "/api/users/3f0c726d-12a5-4f7f-bb39-9e8f6a1b2c3d", env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

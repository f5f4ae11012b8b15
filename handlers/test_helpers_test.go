package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quesec-backend/middleware"
	"quesec-backend/models"
	"quesec-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	// Create tables using raw SQLite-compatible SQL instead of AutoMigrate,
	// because the GORM model tags use PostgreSQL-specific defaults like gen_random_uuid().
	if err := createSQLiteTables(testDB); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	// Delete in correct order to respect foreign keys
	testDB.Exec("DELETE FROM variation_images")
	testDB.Exec("DELETE FROM variations")
	testDB.Exec("DELETE FROM product_images")
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM categories")
	testDB.Exec("DELETE FROM users")
	return testDB
}

// createSQLiteTables creates all tables with SQLite-compatible DDL.
func createSQLiteTables(db *gorm.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"name" TEXT,
			"role" TEXT DEFAULT 'staff',
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON "users"("deleted_at")`,

		`CREATE TABLE IF NOT EXISTS "categories" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL UNIQUE,
			"slug" TEXT NOT NULL UNIQUE,
			"parent_id" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			CONSTRAINT fk_categories_parent FOREIGN KEY ("parent_id") REFERENCES "categories"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON "categories"("parent_id")`,

		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"slug" TEXT NOT NULL UNIQUE,
			"category_id" TEXT NOT NULL,
			"brand" TEXT,
			"sku" TEXT NOT NULL UNIQUE,
			"price" REAL NOT NULL,
			"mrp" REAL,
			"stock" INTEGER DEFAULT 0,
			"short_description" TEXT,
			"description" TEXT,
			"cover_image" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"is_featured" INTEGER DEFAULT 0,
			"color" TEXT,
			"size" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_products_category FOREIGN KEY ("category_id") REFERENCES "categories"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category_id ON "products"("category_id")`,
		`CREATE INDEX IF NOT EXISTS idx_products_brand ON "products"("brand")`,
		`CREATE INDEX IF NOT EXISTS idx_products_is_active ON "products"("is_active")`,

		`CREATE TABLE IF NOT EXISTS "product_images" (
			"id" TEXT PRIMARY KEY,
			"product_id" TEXT NOT NULL,
			"image_url" TEXT NOT NULL,
			"alt_text" TEXT,
			"sort_order" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_product_images_product FOREIGN KEY ("product_id") REFERENCES "products"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_product_images_product_id ON "product_images"("product_id")`,

		`CREATE TABLE IF NOT EXISTS "variations" (
			"id" TEXT PRIMARY KEY,
			"product_id" TEXT NOT NULL,
			"name" TEXT,
			"slug" TEXT NOT NULL,
			"sku" TEXT NOT NULL UNIQUE,
			"color" TEXT,
			"size" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_variations_product FOREIGN KEY ("product_id") REFERENCES "products"("id")
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_variations_product_slug ON "variations"("product_id","slug")`,

		`CREATE TABLE IF NOT EXISTS "variation_images" (
			"id" TEXT PRIMARY KEY,
			"variation_id" TEXT NOT NULL,
			"image_url" TEXT NOT NULL,
			"alt_text" TEXT,
			"sort_order" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_variation_images_variation FOREIGN KEY ("variation_id") REFERENCES "variations"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_variation_images_variation_id ON "variation_images"("variation_id")`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedTestUser creates a user and returns it with a valid JWT.
func seedTestUser(db *gorm.DB, email, role string) (models.User, string) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     "Test User",
		Role:     role,
	}
	db.Create(&user)

	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role)
	return user, token
}

// seedCategory creates a test category; the slug is derived on save.
func seedCategory(db *gorm.DB, name string) models.Category {
	cat := models.Category{
		ID:       uuid.New(),
		Name:     name,
		IsActive: true,
	}
	db.Create(&cat)
	return cat
}

// seedProduct creates an active test product with a derived slug.
func seedProduct(db *gorm.DB, name string, categoryID uuid.UUID, price float64) models.Product {
	prod := models.Product{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: categoryID,
		SKU:        "SKU-" + uuid.New().String()[:8],
		Price:      price,
		Stock:      100,
		IsActive:   true,
	}
	db.Create(&prod)
	return prod
}

// deactivate flips is_active off with an explicit update, since GORM skips
// zero-value bools on create and the column default would win.
func deactivate(db *gorm.DB, model interface{}, id uuid.UUID) {
	db.Model(model).Where("id = ?", id).UpdateColumn("is_active", false)
}

// backdate rewrites created_at so ordering tests have distinct timestamps.
func backdate(db *gorm.DB, model interface{}, id uuid.UUID, ago time.Duration) {
	db.Model(model).Where("id = ?", id).UpdateColumn("created_at", time.Now().Add(-ago))
}

// seedVariation creates a variation; the slug is derived scoped to the product.
func seedVariation(db *gorm.DB, productID uuid.UUID, name, color, size string) models.Variation {
	v := models.Variation{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      name,
		SKU:       "VSKU-" + uuid.New().String()[:8],
		Color:     color,
		Size:      size,
	}
	db.Create(&v)
	return v
}

// seedProductImage creates a gallery row for a product.
func seedProductImage(db *gorm.DB, productID uuid.UUID, url, alt string, sortOrder int) models.ProductImage {
	img := models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		ImageURL:  url,
		AltText:   alt,
		SortOrder: sortOrder,
	}
	db.Create(&img)
	return img
}

// jsonRequest creates an HTTP request with a JSON body.
func jsonRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authRequest creates an HTTP request with JSON body and Authorization header.
func authRequest(method, url string, body interface{}, token string) *http.Request {
	req := jsonRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// parseResponse reads the response body into a map.
func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// parseResponseArray reads the response body into a slice of maps.
func parseResponseArray(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// setupShopRouter wires the public storefront routes.
func setupShopRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	shopHandler := &ShopHandler{DB: db}

	api := r.Group("/api")
	api.GET("/shop", shopHandler.ListProducts)
	api.GET("/shop/:slug", shopHandler.GetProductDetail)
	api.GET("/shop/:slug/:variation", shopHandler.GetProductDetail)

	return r
}

// setupCategoryRouter wires public and admin category routes.
func setupCategoryRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	categoryHandler := &CategoryHandler{DB: db}

	api := r.Group("/api")
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	return r
}

// setupProductRouter wires admin product, gallery and variation routes.
func setupProductRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	productHandler := &ProductHandler{DB: db}
	variationHandler := &VariationHandler{DB: db}

	api := r.Group("/api")

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/products", productHandler.GetProductsPaginated)
	admin.GET("/products/:id", productHandler.GetProduct)
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products/:id", productHandler.UpdateProduct)
	admin.DELETE("/products/:id", productHandler.DeleteProduct)
	admin.POST("/products/:id/duplicate", productHandler.DuplicateProduct)
	admin.GET("/products/:id/images", productHandler.ListProductImages)
	admin.POST("/products/:id/images", productHandler.AddProductImage)
	admin.PUT("/products/:id/images/:imageID", productHandler.UpdateProductImage)
	admin.DELETE("/products/:id/images/:imageID", productHandler.DeleteProductImage)
	admin.GET("/products/:id/variations", variationHandler.ListVariations)
	admin.POST("/products/:id/variations", variationHandler.CreateVariation)
	admin.PUT("/variations/:id", variationHandler.UpdateVariation)
	admin.DELETE("/variations/:id", variationHandler.DeleteVariation)
	admin.POST("/variations/:id/images", variationHandler.AddVariationImage)
	admin.DELETE("/variations/:id/images/:imageID", variationHandler.DeleteVariationImage)

	return r
}

// setupAuthRouter wires the auth routes.
func setupAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	authHandler := &AuthHandler{DB: db}

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/auth/profile", authHandler.GetProfile)

	return r
}

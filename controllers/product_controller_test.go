package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/supplyline-api/models"
	"gorm.io/gorm"
)

func setupProductRouter(identity *models.Identity) *gin.Engine {
	router := setupTestRouter()
	authed := router.Group("/")
	authed.Use(authAs(identity))
	authed.POST("/products", CreateProduct)
	authed.GET("/products/my-catalog", ListMyCatalog)
	authed.PUT("/products/:id", UpdateProduct)
	authed.DELETE("/products/:id", DeleteProduct)
	authed.GET("/products/supplier/:id", SupplierCatalog)
	return router
}

func createProduct(t *testing.T, db *gorm.DB, vendorID uint, name string, price, discount float64) *models.Product {
	t.Helper()

	product := models.Product{
		VendorID:        vendorID,
		Name:            name,
		Price:           price,
		Quantity:        100,
		Unit:            "kg",
		DiscountPercent: discount,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return &product
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "POST", "/products", gin.H{
		"name":             "Steel Rod",
		"price":            10.50,
		"quantity":         100,
		"unit":             "kg",
		"discount_percent": 0,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Steel Rod", data["name"])
	assert.Equal(t, 10.50, data["price"])
	assert.Equal(t, float64(vendor.ID), data["supplier_id"])
}

func TestCreateProductWithoutVendorProfile(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "POST", "/products", gin.H{
		"name":     "Steel Rod",
		"price":    10.50,
		"quantity": 100,
		"unit":     "kg",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "Only suppliers can manage products", errorData["message"])
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	supplier, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupProductRouter(supplier)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"price": 10.0, "unit": "kg"}},
		{"zero price", gin.H{"name": "X", "price": 0, "unit": "kg"}},
		{"negative price", gin.H{"name": "X", "price": -5.0, "unit": "kg"}},
		{"discount above 100", gin.H{"name": "X", "price": 10.0, "unit": "kg", "discount_percent": 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListMyCatalog(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	createProduct(t, db, vendor.ID, "Copper Wire", 4.20, 10)
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "GET", "/products/my-catalog", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	products := response["data"].([]interface{})
	assert.Len(t, products, 2)
}

func TestListMyCatalogWithoutVendorProfile(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "GET", "/products/my-catalog", nil)

	// No vendor profile yields an empty list, not an error
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	products := response["data"].([]interface{})
	assert.Empty(t, products)
}

func TestUpdateProduct(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	product := createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/products/%d", product.ID), gin.H{
		"price":            12.00,
		"discount_percent": 25,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 12.00, reloaded.Price)
	assert.Equal(t, 25.0, reloaded.DiscountPercent)
	assert.Equal(t, "Steel Rod", reloaded.Name, "Untouched fields keep their values")
}

func TestUpdateProductNotOwner(t *testing.T) {
	db := setupTestDB(t)
	_, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	other, _ := createSupplier(t, db, "other@example.com", "OtherCorp")
	product := createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(other)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/products/%d", product.ID), gin.H{"price": 1.0})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateProductInvalidValues(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	product := createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(supplier)

	tests := []struct {
		name string
		body gin.H
	}{
		{"zero price", gin.H{"price": 0}},
		{"negative price", gin.H{"price": -1.0}},
		{"negative discount", gin.H{"discount_percent": -5}},
		{"discount above 100", gin.H{"discount_percent": 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "PUT", fmt.Sprintf("/products/%d", product.ID), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	product := createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "DELETE", fmt.Sprintf("/products/%d", product.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Product
	err := db.First(&reloaded, product.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "Deleted product must not be readable")
}

func TestDeleteProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	supplier, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "DELETE", "/products/9999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorData["code"])
}

func TestSupplierCatalogRequiresAcceptedConnection(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	_, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(consumer)

	path := fmt.Sprintf("/products/supplier/%d", vendor.ID)

	// No connection at all
	w := doJSON(t, router, "GET", path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "You must connect with this supplier first", errorData["message"])

	// Pending is not enough
	conn := connect(t, db, consumer, vendor, models.ConnectionPending)
	w = doJSON(t, router, "GET", path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Accepted opens the catalog
	conn.Status = models.ConnectionAccepted
	require.NoError(t, db.Save(conn).Error)
	w = doJSON(t, router, "GET", path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeEnvelope(t, w)
	products := response["data"].([]interface{})
	assert.Len(t, products, 1)
}

func TestSupplierCatalogRejectedConnection(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	_, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	connect(t, db, consumer, vendor, models.ConnectionRejected)
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "GET", fmt.Sprintf("/products/supplier/%d", vendor.ID), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSupplierCatalogAcceptsLegacyUppercaseStatus(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	_, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	connect(t, db, consumer, vendor, models.ConnectionStatus("ACCEPTED"))
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "GET", fmt.Sprintf("/products/supplier/%d", vendor.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSupplierCatalogComputesEffectivePrice(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	_, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	createProduct(t, db, vendor.ID, "Steel Rod", 100, 10)
	connect(t, db, consumer, vendor, models.ConnectionAccepted)
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "GET", fmt.Sprintf("/products/supplier/%d", vendor.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	products := response["data"].([]interface{})
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, float64(100), product["price"])
	assert.Equal(t, float64(90), product["effective_price"])
}

func TestSupplierCatalogOwnerBypassesGate(t *testing.T) {
	db := setupTestDB(t)
	supplier, vendor := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	createProduct(t, db, vendor.ID, "Steel Rod", 10.50, 0)
	router := setupProductRouter(supplier)

	w := doJSON(t, router, "GET", fmt.Sprintf("/products/supplier/%d", vendor.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSupplierCatalogUnknownSupplier(t *testing.T) {
	db := setupTestDB(t)
	consumer := createConsumer(t, db, "buyer@example.com")
	router := setupProductRouter(consumer)

	w := doJSON(t, router, "GET", "/products/supplier/9999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SUPPLIER_NOT_FOUND", errorData["code"])
}

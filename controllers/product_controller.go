package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Quantity        int     `json:"quantity" binding:"gte=0"`
	Unit            string  `json:"unit" binding:"required"`
	DiscountPercent float64 `json:"discount_percent" binding:"gte=0,lte=100"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	Quantity        *int     `json:"quantity"`
	Unit            *string  `json:"unit"`
	DiscountPercent *float64 `json:"discount_percent"`
}

// CreateProduct handles POST /api/v1/products - adds a catalog item to
// the caller's vendor
func CreateProduct(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	vendor, err := services.VendorFor(db, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	if vendor == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only suppliers can manage products",
			},
		})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	product := models.Product{
		VendorID:        vendor.ID,
		Name:            req.Name,
		Price:           req.Price,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		DiscountPercent: req.DiscountPercent,
	}
	if err := db.Create(&product).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListMyCatalog handles GET /api/v1/products/my-catalog - lists the
// caller's own products, ungated. An account without a vendor profile
// gets an empty list.
func ListMyCatalog(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	vendor, err := services.VendorFor(db, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	products := make([]models.Product, 0)
	if vendor != nil {
		if err := db.Where("vendor_id = ?", vendor.ID).Find(&products).Error; err != nil {
			respondError(c, err)
			return
		}
		attachImageURLs(products)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id - vendor-owner only
func UpdateProduct(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if _, err := services.RequireVendorOwner(db, identity, product.VendorID); err != nil {
		respondError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be positive",
			},
		})
		return
	}
	if req.DiscountPercent != nil && (*req.DiscountPercent < 0 || *req.DiscountPercent > 100) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Discount percent must be between 0 and 100",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil && *req.Unit != "" {
		updates["unit"] = *req.Unit
	}
	if req.DiscountPercent != nil {
		updates["discount_percent"] = *req.DiscountPercent
	}

	if len(updates) > 0 {
		if err := db.Model(product).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	if err := db.First(product, product.ID).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id - vendor-owner only
func DeleteProduct(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if _, err := services.RequireVendorOwner(db, identity, product.VendorID); err != nil {
		respondError(c, err)
		return
	}

	if product.ImageS3Key != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*product.ImageS3Key); err != nil {
				log.Printf("warning: failed to delete image for product %d: %v", product.ID, err)
			}
		}
	}

	if err := db.Delete(product).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":      product.ID,
			"deleted": true,
		},
	})
}

// SupplierCatalog handles GET /api/v1/products/supplier/:id - the gated
// catalog read. Requires an accepted connection between the caller and
// the vendor; the vendor's own staff see their catalog without a
// connection.
func SupplierCatalog(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Supplier ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	var vendor models.Vendor
	if err := db.First(&vendor, uint(vendorID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUPPLIER_NOT_FOUND",
					"message": "Supplier not found",
				},
			})
			return
		}
		respondError(c, err)
		return
	}

	if vendor.IdentityID != identity.ID {
		if err := services.CanViewCatalog(db, identity.ID, vendor.ID); err != nil {
			respondError(c, err)
			return
		}
	}

	var products []models.Product
	if err := db.Where("vendor_id = ?", vendor.ID).Find(&products).Error; err != nil {
		respondError(c, err)
		return
	}

	for i := range products {
		products[i].EffectiveUnit = products[i].EffectivePrice()
	}
	attachImageURLs(products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// findProduct loads the product addressed by the :id route parameter,
// writing the error response itself when the lookup fails.
func findProduct(c *gin.Context) (*models.Product, bool) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Product ID must be numeric",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, uint(productID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return nil, false
	}
	return &product, true
}

// attachImageURLs fills the computed ImageURL field with presigned URLs
// for products that carry an uploaded image.
func attachImageURLs(products []models.Product) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	for i := range products {
		if products[i].ImageS3Key == nil {
			continue
		}
		url, err := imageService.GetImageURL(*products[i].ImageS3Key)
		if err != nil {
			log.Printf("warning: failed to presign image for product %d: %v", products[i].ID, err)
			continue
		}
		if url != "" {
			products[i].ImageURL = &url
		}
	}
}

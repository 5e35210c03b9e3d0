package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// OrderItemRequest is a single line in an order placement request
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	SupplierID uint               `json:"supplier_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder handles POST /api/v1/orders - places an order with a
// supplier the caller holds an accepted connection to. The total is
// computed from effective prices at placement time. Lines whose product
// no longer exists contribute nothing to the total but are still
// persisted; removed products silently drop out of the sum.
func PlaceOrder(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateOrderRequest
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

	db := config.GetDB()
	if err := services.CanOrder(db, identity.ID, req.SupplierID); err != nil {
		respondError(c, err)
		return
	}

	var total float64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		var product models.Product
		err := db.First(&product, item.ProductID).Error
		if err == nil {
			total += product.EffectivePrice() * float64(item.Quantity)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, err)
			return
		}
		lines = append(lines, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		ConsumerID:  identity.ID,
		VendorID:    req.SupplierID,
		TotalAmount: total,
		Status:      "pending",
		Lines:       lines,
	}
	if err := db.Create(&order).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - lists the caller's orders
func ListMyOrders(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	orders := make([]models.Order, 0)
	if err := db.Where("consumer_id = ?", identity.ID).Order("created_at desc").Find(&orders).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListIncomingOrders handles GET /api/v1/supplier/orders - lists orders
// placed with the caller's vendor. An account without a vendor profile
// gets an empty list.
func ListIncomingOrders(c *gin.Context) {
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

	orders := make([]models.Order, 0)
	if vendor != nil {
		if err := db.Where("vendor_id = ?", vendor.ID).Order("created_at desc").Find(&orders).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns one order with its
// lines. Only the ordering consumer or the supplying vendor's owner may
// read it.
func GetOrder(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Lines").First(&order, uint(orderID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	authorized := order.ConsumerID == identity.ID
	if !authorized {
		vendor, err := services.VendorFor(db, identity)
		if err != nil {
			respondError(c, err)
			return
		}
		authorized = vendor != nil && vendor.ID == order.VendorID
	}
	if !authorized {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You are not a party to this order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

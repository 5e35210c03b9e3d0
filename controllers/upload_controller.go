package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/services"
	"github.com/supplyline/supplyline-api/utils"
)

// UploadProductImage handles POST /api/v1/products/:id/image - attaches
// a PNG image to a catalog item. Vendor-owner only. The file lands in
// S3; the stored key is persisted on the product and a presigned URL is
// returned.
func UploadProductImage(c *gin.Context) {
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

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required in the 'image' form field",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store image",
			},
		})
		return
	}

	// Replace any previous image; a stale key would leak storage
	if product.ImageS3Key != nil && *product.ImageS3Key != imageKey {
		if err := imageService.DeleteImage(*product.ImageS3Key); err != nil {
			log.Printf("warning: failed to delete previous image for product %d: %v", product.ID, err)
		}
	}

	if err := db.Model(product).Update("image_s3_key", imageKey).Error; err != nil {
		respondError(c, err)
		return
	}
	product.ImageS3Key = &imageKey

	if url, err := imageService.GetImageURL(imageKey); err == nil && url != "" {
		product.ImageURL = &url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

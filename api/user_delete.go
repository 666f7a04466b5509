package api

import (
	"context"
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDelete removes the caller's account. Owned reports, vitals and
// grants cascade away with the user row; the stored report files are
// deleted explicitly since the content store knows nothing about
// database rows.
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var fileKeys []string

	err := a.DB.
		Model(model.Report{}).
		Where("user_id = ?", userID).
		Pluck("file_key", &fileKeys).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to collect user file keys", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", userID).Delete(model.SharedAccess{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(model.Vital{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(model.Report{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(model.User{}).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, key := range fileKeys {
		if err := a.Store.Delete(context.Background(), key); err != nil {
			// The row is already gone so this only leaves an orphaned
			// file behind, which is logged but not surfaced
			zap.L().Error("Failed to delete stored file", zap.Error(err), zap.String("key", key))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

package api

import (
	"errors"
	"healthwallet/api/model"
	"healthwallet/api/storage"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportDelete is owner only. The stored file goes first, then the
// metadata row together with its grants. Vitals pointing at the
// report keep their readings, only the back reference is cleared.
// Not owning the report and the report not existing are
// indistinguishable in the response.
func (a *API) ReportDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	reportID := c.Param("id")
	if reportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No report ID provided",
			"requestID": requestID,
		})
		return
	}

	var report model.Report

	err := a.DB.
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&report).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Report not found or access denied",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check report ownership", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.Store.Delete(c.Request.Context(), report.FileKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete stored file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(model.Vital{}).
			Where("report_id = ?", reportID).
			Update("report_id", nil).
			Error; err != nil {
			return err
		}

		if err := tx.
			Where("report_id = ?", reportID).
			Delete(model.SharedAccess{}).
			Error; err != nil {
			return err
		}

		return tx.Where("id = ?", reportID).Delete(model.Report{}).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete report", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

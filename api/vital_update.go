package api

import (
	"healthwallet/api/model"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type vitalUpdateBody struct {
	Value      *float64   `json:"value"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// VitalUpdate changes only the supplied fields. Type and unit are
// immutable after creation, a different measurement is a new reading.
func (a *API) VitalUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	vitalID := c.Param("id")
	if vitalID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No vital ID provided",
			"requestID": requestID,
		})
		return
	}

	var data vitalUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var vital model.Vital

	err := a.DB.
		Where("id = ? AND user_id = ?", vitalID, userID).
		First(&vital).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Vital not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch vital", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Value != nil {
		vital.Value = *data.Value
	}

	if data.RecordedAt != nil {
		vital.RecordedAt = *data.RecordedAt
	}

	err = a.DB.Save(&vital).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update vital", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vital updated successfully",
		"vital":   vital,
	})
}

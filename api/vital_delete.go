package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) VitalDelete(c *gin.Context) {
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

	res := a.DB.
		Where("id = ? AND user_id = ?", vitalID, userID).
		Delete(model.Vital{})
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete vital", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Vital not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vital deleted successfully"})
}

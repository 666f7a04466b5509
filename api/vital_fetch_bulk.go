package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VitalFetchBulk lists the caller's readings, newest first. There is
// no sharing path for vitals, the scope is always the caller.
func (a *API) VitalFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	q := a.DB.Where("user_id = ?", userID)

	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	if start := c.Query("startDate"); start != "" {
		q = q.Where("recorded_at >= ?", start)
	}

	if end := c.Query("endDate"); end != "" {
		q = q.Where("recorded_at <= ?", end)
	}

	var vitals []model.Vital

	err := q.Order("recorded_at desc").Find(&vitals).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user vitals", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"vitals": vitals})
}

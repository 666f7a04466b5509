package api

import (
	"healthwallet/api/model"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportFetchBulk lists the caller's own reports ordered by the
// logical report date, newest first. Filters are optional and
// combined with AND.
func (a *API) ReportFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	q := a.DB.Where("user_id = ?", userID)

	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	if start := c.Query("startDate"); start != "" {
		q = q.Where("date >= ?", start)
	}

	if end := c.Query("endDate"); end != "" {
		q = q.Where("date <= ?", end)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(notes) LIKE ?", pattern, pattern)
	}

	var reports []model.Report

	err := q.Order("date desc").Find(&reports).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user reports", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

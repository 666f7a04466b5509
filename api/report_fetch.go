package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reportWithRole struct {
	model.Report
	AccessRole string `json:"access_role"`
}

// ReportFetch returns a single report if the caller either owns it
// or holds a grant keyed to their email. Absence and missing access
// are answered identically so the endpoint doesn't leak which
// report IDs exist.
func (a *API) ReportFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	userEmail := c.MustGet("userEmail").(string)

	reportID := c.Param("id")
	if reportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No report ID provided",
			"requestID": requestID,
		})
		return
	}

	var report reportWithRole

	err := a.DB.
		Model(model.Report{}).
		Select("reports.*, CASE WHEN reports.user_id = ? THEN 'owner' ELSE 'viewer' END AS access_role", userID).
		Joins("LEFT JOIN shared_access ON shared_access.report_id = reports.id AND shared_access.shared_with_email = ?", userEmail).
		Where("reports.id = ? AND (reports.user_id = ? OR shared_access.shared_with_email = ?)", reportID, userID, userEmail).
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

		zap.L().Error("Failed to fetch report", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

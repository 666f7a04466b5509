package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShareFetchForReport lists all grants on one report. Owner only,
// everyone else sees the usual collapsed 404.
func (a *API) ShareFetchForReport(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	reportID := c.Param("reportId")
	if reportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No report ID provided",
			"requestID": requestID,
		})
		return
	}

	var owns bool

	err := a.DB.
		Model(model.Report{}).
		Where("id = ? AND user_id = ?", reportID, userID).
		Select("count(*) > 0").
		Find(&owns).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check report ownership", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !owns {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Report not found or access denied",
			"requestID": requestID,
		})
		return
	}

	var shares []model.SharedAccess

	err = a.DB.
		Where("report_id = ?", reportID).
		Order("created_at desc").
		Find(&shares).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup grants", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

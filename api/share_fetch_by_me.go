package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type shareByMe struct {
	model.SharedAccess
	ReportTitle string `json:"report_title"`
	ReportType  string `json:"report_type"`
}

// ShareFetchByMe lists the grants the caller created, joined with the
// report metadata for display. Read only, no side effects.
func (a *API) ShareFetchByMe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var shares []shareByMe

	err := a.DB.
		Model(model.SharedAccess{}).
		Select("shared_access.*, reports.title AS report_title, reports.type AS report_type").
		Joins("JOIN reports ON shared_access.report_id = reports.id").
		Where("shared_access.owner_id = ?", userID).
		Order("shared_access.created_at desc").
		Find(&shares).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup grants by owner", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

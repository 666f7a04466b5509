package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sharedReport struct {
	model.Report
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	AccessType string `json:"access_type"`
}

// ReportFetchShared lists reports other users have shared with the
// caller's email, joined with the owner's display data
func (a *API) ReportFetchShared(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userEmail := c.MustGet("userEmail").(string)

	var reports []sharedReport

	err := a.DB.
		Model(model.Report{}).
		Select("reports.*, users.name AS owner_name, users.email AS owner_email, shared_access.access_type").
		Joins("JOIN shared_access ON reports.id = shared_access.report_id").
		Joins("JOIN users ON reports.user_id = users.id").
		Where("shared_access.shared_with_email = ?", userEmail).
		Order("reports.date desc").
		Find(&reports).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup shared reports", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

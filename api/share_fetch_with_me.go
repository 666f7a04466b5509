package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type shareWithMe struct {
	model.SharedAccess
	ReportTitle string `json:"report_title"`
	ReportType  string `json:"report_type"`
	ReportDate  string `json:"report_date"`
	OwnerName   string `json:"owner_name"`
	OwnerEmail  string `json:"owner_email"`
}

// ShareFetchWithMe lists the grants pointing at the caller's email,
// joined with report and owner metadata for display
func (a *API) ShareFetchWithMe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userEmail := c.MustGet("userEmail").(string)

	var shares []shareWithMe

	err := a.DB.
		Model(model.SharedAccess{}).
		Select("shared_access.*, reports.title AS report_title, reports.type AS report_type, reports.date AS report_date, users.name AS owner_name, users.email AS owner_email").
		Joins("JOIN reports ON shared_access.report_id = reports.id").
		Joins("JOIN users ON shared_access.owner_id = users.id").
		Where("shared_access.shared_with_email = ?", userEmail).
		Order("shared_access.created_at desc").
		Find(&shares).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup grants by recipient", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

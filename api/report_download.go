package api

import (
	"errors"
	"fmt"
	"healthwallet/api/model"
	"healthwallet/api/storage"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type downloadInfo struct {
	FileKey      string
	OriginalName string
	Format       string
}

// ReportDownload streams the stored file under the same access rule
// as ReportFetch. The bytes live under the opaque storage key, the
// original filename is only suggested to the client. A metadata row
// whose object is gone answers 404 instead of pretending the state
// is consistent.
func (a *API) ReportDownload(c *gin.Context) {
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

	var info downloadInfo

	err := a.DB.
		Model(model.Report{}).
		Select("reports.file_key, reports.original_name, reports.format").
		Joins("LEFT JOIN shared_access ON shared_access.report_id = reports.id AND shared_access.shared_with_email = ?", userEmail).
		Where("reports.id = ? AND (reports.user_id = ? OR shared_access.shared_with_email = ?)", reportID, userID, userEmail).
		First(&info).
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

		zap.L().Error("Failed to fetch report for download", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	r, size, err := a.Store.Open(c.Request.Context(), info.FileKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})

			zap.L().Warn("Report row has no stored object", zap.String("reportID", reportID), zap.String("key", info.FileKey))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open stored file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer r.Close()

	c.DataFromReader(http.StatusOK, size, info.Format, r, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", info.OriginalName),
	})
}

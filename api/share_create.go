package api

import (
	"errors"
	"healthwallet/api/model"
	"healthwallet/api/validators"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type shareCreateBody struct {
	ReportID        string `json:"report_id"`
	SharedWithEmail string `json:"shared_with_email"`
	AccessType      string `json:"access_type"`
}

// ShareCreate grants one recipient email visibility of one report.
// Only the owner can share, and at most one grant can exist per
// (report, email) pair. The pre-check gives a clean 409 but the
// unique index is what actually prevents duplicates when two
// requests race.
func (a *API) ShareCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	userEmail := c.MustGet("userEmail").(string)

	var data shareCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.ReportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No report ID provided",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.SharedWithEmail); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.AccessType == "" {
		data.AccessType = model.AccessRead
	}

	if !model.ValidAccessType(data.AccessType) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Valid access_type (read/write) is required",
			"requestID": requestID,
		})
		return
	}

	// The owner already has full access, a self grant would only
	// produce confusing duplicate rows in the shared listings
	if strings.EqualFold(data.SharedWithEmail, userEmail) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Can't share a report with yourself",
			"requestID": requestID,
		})
		return
	}

	var owns bool

	err := a.DB.
		Model(model.Report{}).
		Where("id = ? AND user_id = ?", data.ReportID, userID).
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

	var exists bool

	err = a.DB.
		Model(model.SharedAccess{}).
		Where("report_id = ? AND shared_with_email = ?", data.ReportID, data.SharedWithEmail).
		Select("count(*) > 0").
		Find(&exists).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check for existing grant", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if exists {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     "Report already shared with this email",
			"requestID": requestID,
		})
		return
	}

	shareID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate share ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	share := model.SharedAccess{
		ID:              shareID,
		ReportID:        data.ReportID,
		OwnerID:         userID,
		SharedWithEmail: data.SharedWithEmail,
		AccessType:      data.AccessType,
		CreatedAt:       time.Now().Unix(),
	}

	if err := a.DB.Create(&share).Error; err != nil {
		// The unique index won the race against the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "Report already shared with this email",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create grant", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report shared successfully",
		"share":   share,
	})
}

package api

import (
	"errors"
	"healthwallet/api/model"
	"healthwallet/api/validators"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type vitalCreateBody struct {
	Type       string     `json:"type"`
	Value      *float64   `json:"value"`
	RecordedAt *time.Time `json:"recorded_at"`
	ReportID   *string    `json:"report_id"`
}

func (a *API) VitalCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data vitalCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	unit, err := validators.VitalTypeValidator(data.Type)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.Value == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No value provided",
			"requestID": requestID,
		})
		return
	}

	if data.RecordedAt == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrRecordedAtMissing.Error(),
			"requestID": requestID,
		})
		return
	}

	// A reading may point back at one of the caller's own reports,
	// never at somebody else's
	if data.ReportID != nil && *data.ReportID != "" {
		var owns bool

		err := a.DB.
			Model(model.Report{}).
			Where("id = ? AND user_id = ?", *data.ReportID, userID).
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
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid report reference",
				"requestID": requestID,
			})
			return
		}
	} else {
		data.ReportID = nil
	}

	vitalID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate vital ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	vital := model.Vital{
		ID:         vitalID,
		UserID:     userID,
		Type:       data.Type,
		Value:      *data.Value,
		Unit:       unit,
		RecordedAt: *data.RecordedAt,
		ReportID:   data.ReportID,
		CreatedAt:  time.Now().Unix(),
	}

	if err := a.DB.Create(&vital).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid report reference",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save vital", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vital recorded successfully",
		"vital":   vital,
	})
}

package api

import (
	"context"
	"errors"
	"healthwallet/api/model"
	"healthwallet/api/validators"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// ReportUpload validates the metadata before the file touches the
// content store, so a rejected request never leaves bytes behind. If
// the metadata insert fails after the file was stored the file is
// deleted again.
func (a *API) ReportUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	reportType := c.PostForm("type")
	title := c.PostForm("title")
	date := c.PostForm("date")
	notes := c.PostForm("notes")

	if err := validators.ReportMetadataValidator(reportType, title, date); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrNoFile.Error(),
			"requestID": requestID,
		})
		return
	}

	code, f, format, err := validators.ReportFileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))

			// That's to set the error into a general one for the users
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	key, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate file key", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	fileKey := key + path.Ext(fh.Filename)

	err = a.Store.Save(c.Request.Context(), fileKey, f, fh.Size, format)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	reportID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		a.Store.Delete(context.Background(), fileKey)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate report ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	report := model.Report{
		ID:           reportID,
		UserID:       userID,
		Type:         reportType,
		Title:        title,
		FileKey:      fileKey,
		OriginalName: fh.Filename,
		Format:       format,
		Size:         fh.Size,
		Date:         date,
		Notes:        notes,
		CreatedAt:    time.Now().Unix(),
	}

	if err := a.DB.Create(&report).Error; err != nil {
		if derr := a.Store.Delete(context.Background(), fileKey); derr != nil {
			zap.L().Error("Failed to cleanup after failed upload", zap.Error(derr), zap.String("key", fileKey))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save report record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report uploaded successfully",
		"report":  report,
	})
}

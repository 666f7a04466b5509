package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type shareUpdateBody struct {
	AccessType string `json:"access_type"`
}

// ShareUpdate changes a grant's access level. The new type is
// validated before anything is touched so an invalid value never
// mutates the existing grant. Owner only, with the collapsed 404.
func (a *API) ShareUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	shareID := c.Param("id")
	if shareID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No share ID provided",
			"requestID": requestID,
		})
		return
	}

	var data shareUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !model.ValidAccessType(data.AccessType) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Valid access_type (read/write) is required",
			"requestID": requestID,
		})
		return
	}

	res := a.DB.
		Model(model.SharedAccess{}).
		Where("id = ? AND owner_id = ?", shareID, userID).
		Update("access_type", data.AccessType)
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update grant", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Share not found or access denied",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access updated successfully"})
}

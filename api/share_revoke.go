package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShareRevoke deletes a grant if the caller owns it. A grant that
// doesn't exist and a grant owned by someone else produce the same
// response.
func (a *API) ShareRevoke(c *gin.Context) {
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

	res := a.DB.
		Where("id = ? AND owner_id = ?", shareID, userID).
		Delete(model.SharedAccess{})
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to revoke grant", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Share not found or access denied",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access revoked successfully"})
}

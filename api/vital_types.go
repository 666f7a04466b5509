package api

import (
	"healthwallet/api/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VitalTypes returns the fixed type -> unit/label table. The response
// never changes at runtime so the route sits behind the response cache.
func (a *API) VitalTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vitalTypes": model.VitalTypes})
}

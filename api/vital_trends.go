package api

import (
	"healthwallet/api/model"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type vitalTrend struct {
	Type     string  `json:"type"`
	AvgValue float64 `json:"avg_value"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
	Count    int     `json:"count"`
	Unit     string  `json:"unit"`
}

type vitalPoint struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// VitalTrends aggregates the caller's readings per type over a
// trailing window and returns the raw ascending series alongside for
// charting. The window is days back from now, defaulting to 30.
func (a *API) VitalTrends(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Days is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	var trends []vitalTrend

	err = a.DB.
		Model(model.Vital{}).
		Select("type, AVG(value) AS avg_value, MIN(value) AS min_value, MAX(value) AS max_value, COUNT(*) AS count, unit").
		Where("user_id = ? AND recorded_at >= ?", userID, cutoff).
		// unit is functionally dependent on type, but postgres still
		// wants it in the grouping
		Group("type, unit").
		Find(&trends).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to aggregate vital trends", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var readings []model.Vital

	err = a.DB.
		Where("user_id = ? AND recorded_at >= ?", userID, cutoff).
		Order("recorded_at asc").
		Find(&readings).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch vital readings", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	chartData := make(map[string][]vitalPoint)
	for _, r := range readings {
		chartData[r.Type] = append(chartData[r.Type], vitalPoint{
			Value:      r.Value,
			RecordedAt: r.RecordedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":    trends,
		"chartData": chartData,
	})
}

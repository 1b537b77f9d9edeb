package handlers

import (
	"net/http"

	"virtual-battery/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ControllerHandler serves the controller variant catalog.
type ControllerHandler struct{}

func NewControllerHandler() *ControllerHandler {
	return &ControllerHandler{}
}

// ListControllers handles GET /api/v1/controllers
func (h *ControllerHandler) ListControllers(c *gin.Context) {
	controllers := []models.ControllerInfo{
		{
			Name:        "daily_threshold",
			Description: "Adaptive price-threshold controller. Recomputes high/low price quantiles from each day's prices; discharges above the high threshold, charges below the low one.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "thresh_high_quantile",
					Type:        "float",
					Description: "Daily price quantile above which the battery discharges (0..1)",
					Default:     0.85,
				},
				{
					Name:        "thresh_low_quantile",
					Type:        "float",
					Description: "Daily price quantile below which the battery charges (0..1)",
					Default:     0.15,
				},
			},
		},
		{
			Name:        "simple_peak",
			Description: "Fixed-schedule controller. Discharges during the configured peak hours on weekdays, charges from the trough hour onward.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "peak_hours",
					Type:        "[]int",
					Description: "Hours of the day (0..23) treated as peak discharge hours",
					Default:     []int{16, 17},
				},
				{
					Name:        "trough_hour",
					Type:        "int",
					Description: "Hour of the day (0..23) after which the battery charges until full",
					Default:     2,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"controllers": controllers})
}

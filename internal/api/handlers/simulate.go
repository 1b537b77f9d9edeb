package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"virtual-battery/internal/api/models"
	"virtual-battery/internal/config"
	"virtual-battery/internal/controller"
	"virtual-battery/internal/data"
	"virtual-battery/internal/model"
	"virtual-battery/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SimulateHandler handles simulation requests.
type SimulateHandler struct {
	nyiso *data.NYISOClient
	log   zerolog.Logger
}

func NewSimulateHandler(nyiso *data.NYISOClient, log zerolog.Logger) *SimulateHandler {
	return &SimulateHandler{nyiso: nyiso, log: log}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	series, err := h.loadSeries(req.DataSource)
	if err != nil {
		dataError(c, err)
		return
	}
	if req.Options.LimitHours > 0 && req.Options.LimitHours < len(series) {
		series = series[:req.Options.LimitHours]
	}

	cfg := req.Config.Apply(config.Default())
	if err := cfg.Validate(); err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	res, err := sim.New(h.log).Run(cfg, series)
	if err != nil {
		simError(c, err)
		return
	}

	resp := models.SimulateResponse{
		Status:  "completed",
		RunName: cfg.RunName,
		Window: models.TimeWindow{
			Start: series[0].Time,
			End:   series[len(series)-1].Time.Add(time.Hour),
		},
		Hours:                 len(res.Rows),
		Summary:               res.Summary,
		FinalStateOfChargeKWh: res.FinalStateOfChargeKWh,
	}
	if req.Options.IncludeRows {
		resp.Rows = models.RowsFromResult(res.Rows)
	}
	c.JSON(http.StatusOK, resp)
}

// CompareSimulations handles POST /api/v1/simulate/compare
func (h *SimulateHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if len(req.Variations) == 0 {
		badRequest(c, "INVALID_REQUEST", errors.New("at least one variation is required"))
		return
	}

	series, err := h.loadSeries(req.DataSource)
	if err != nil {
		dataError(c, err)
		return
	}

	base := req.BaseConfig.Apply(config.Default())
	results := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, v := range req.Variations {
		cfg := v.Config.Apply(base)
		cfg.RunName = v.Name
		if err := cfg.Validate(); err != nil {
			badRequest(c, "INVALID_CONFIG", fmt.Errorf("variation %q: %w", v.Name, err))
			return
		}
		res, err := sim.New(h.log).Run(cfg, series)
		if err != nil {
			simError(c, fmt.Errorf("variation %q: %w", v.Name, err))
			return
		}
		results = append(results, models.ComparisonResult{Name: v.Name, Summary: res.Summary})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: results})
}

func (h *SimulateHandler) loadSeries(src models.DataSourceConfig) (model.Series, error) {
	switch src.Type {
	case "series_file":
		if src.SeriesFile == "" {
			return nil, errors.New("series_file is required for type series_file")
		}
		return data.LoadSeriesJSON(src.SeriesFile)
	case "meter_nyiso":
		if src.MeterFile == "" {
			return nil, errors.New("meter_file is required for type meter_nyiso")
		}
		tz := src.Timezone
		if tz == "" {
			tz = "America/New_York"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("bad timezone %q: %w", tz, err)
		}
		zone := src.Zone
		if zone == "" {
			zone = "CENTRL"
		}
		series, err := data.ReadMeterFile(src.MeterFile, loc)
		if err != nil {
			return nil, err
		}
		return h.nyiso.AddPrices(series, data.DataTypeDAMLBMP, zone, loc)
	default:
		return nil, fmt.Errorf("unsupported data source type: %q", src.Type)
	}
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

func dataError(c *gin.Context, err error) {
	var nyErr *data.NYISOError
	if errors.As(err, &nyErr) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NYISO_ERROR",
				Message: nyErr.Message,
				Details: map[string]interface{}{
					"status_code": nyErr.StatusCode,
					"url":         nyErr.URL,
				},
			},
		})
		return
	}
	badRequest(c, "DATA_LOAD_ERROR", err)
}

func simError(c *gin.Context, err error) {
	code := "SIMULATION_ERROR"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, controller.ErrUnknownController):
		code = "UNKNOWN_CONTROLLER"
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidRequest),
		errors.Is(err, model.ErrOverCharge),
		errors.Is(err, model.ErrOverDischarge):
		// Controller policy produced a physically infeasible decision.
		code = "CONTROLLER_FAULT"
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

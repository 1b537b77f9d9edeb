// Package controller holds the charge-decision policies that drive the
// battery hour over hour.
package controller

import (
	"errors"
	"fmt"

	"virtual-battery/internal/config"
	"virtual-battery/internal/model"
)

// ErrUnknownController is returned by New for an unrecognized controller tag.
var ErrUnknownController = errors.New("unknown controller type")

// Context is everything a controller may consult for one hourly decision.
// Controllers read the battery's state but never mutate it.
type Context struct {
	Index   int
	Hour    model.Hour
	Series  model.Series
	Battery *model.Battery
}

// Controller decides the requested charge (+) or discharge (-) in kWh for
// the upcoming hour. Decide must keep its request within the battery's
// reported rate and availability bounds; the battery rejects anything else.
type Controller interface {
	Name() string
	Decide(ctx Context) float64
}

// New constructs the controller selected by cfg.Type.
// Unknown tags fail here, before any simulation work starts.
func New(cfg config.ControllerConfig) (Controller, error) {
	switch cfg.Type {
	case "simple_peak":
		return NewSchedule(cfg.PeakHours, cfg.TroughHour), nil
	case "daily_threshold":
		return NewThreshold(cfg.ThreshHighQuantile, cfg.ThreshLowQuantile), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownController, cfg.Type)
	}
}

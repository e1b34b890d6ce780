// Package search implements search-as-you-type over property units. Each
// keystroke request waits out the debounce delay; only the latest one
// reaches the backend.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"proppilot/internal/core"
	"proppilot/internal/debounce"
	"proppilot/internal/metrics"
	"proppilot/internal/rental"
)

// ErrSuperseded is returned to a request replaced by a newer keystroke.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Controller debounces one session's searches.
type Controller struct {
	reader    rental.PropertyUnitReader
	debouncer *debounce.Debouncer
}

// NewController creates a controller waiting delay before searching.
func NewController(reader rental.PropertyUnitReader, delay time.Duration) *Controller {
	return &Controller{reader: reader, debouncer: debounce.New(delay)}
}

// Type records a keystroke. After the delay, if no later keystroke
// arrived, it searches by address; a blank query lists every unit.
func (c *Controller) Type(ctx context.Context, query string) ([]core.PropertyUnit, error) {
	latest, err := c.debouncer.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if !latest {
		metrics.ObserveSearchSuperseded()
		return nil, ErrSuperseded
	}
	return c.Run(ctx, query)
}

// Run searches immediately, bypassing the debounce.
func (c *Controller) Run(ctx context.Context, query string) ([]core.PropertyUnit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.reader.ListPropertyUnits(ctx)
	}
	return c.reader.SearchPropertyUnits(ctx, query)
}

// Cancel supersedes any keystroke still waiting.
func (c *Controller) Cancel() {
	c.debouncer.Stop()
}

// Package devserver is a small suggestion endpoint for trying the form
// against something real.
package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultLimit caps the number of suggestions per response
const DefaultLimit = 10

// Options tune the server's behaviour
type Options struct {
	Limit int
	// Delay holds every response back, to make overlapping requests visible
	Delay time.Duration
	// TermParam is the query parameter carrying the term
	TermParam string
}

// DefaultOptions returns the options used by suggestd
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, TermParam: "term"}
}

// New builds the echo server for idx
func New(idx *Index, opts Options, logger *log.Logger) *echo.Echo {
	if logger == nil {
		logger = log.Default().WithPrefix("devserver")
	}
	if opts.TermParam == "" {
		opts.TermParam = "term"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warn("request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "err", v.Error)
				return nil
			}
			logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	h := &handler{idx: idx, opts: opts}
	e.GET("/suggest", h.suggest)
	e.GET("/healthz", h.health)
	return e
}

type handler struct {
	idx  *Index
	opts Options
}

func (h *handler) suggest(c echo.Context) error {
	limit := h.opts.Limit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	if h.opts.Delay > 0 {
		select {
		case <-time.After(h.opts.Delay):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	return c.JSON(http.StatusOK, h.idx.Search(c.QueryParam(h.opts.TermParam), limit))
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "entries": h.idx.Len()})
}

package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"trends-go/internal/service"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

// DefaultTimeframe is used when the request does not specify one, matching
// the upstream's "last three months" relative range.
const DefaultTimeframe = "today 3-m"

type SeriesHandler struct {
	service service.SeriesService
	stats   trends.StatsProvider
	log     *logger.Logger
}

// NewSeriesHandler creates the handler. stats may be nil when the upstream
// client does not expose request counters.
func NewSeriesHandler(svc service.SeriesService, stats trends.StatsProvider) *SeriesHandler {
	return &SeriesHandler{
		service: svc,
		stats:   stats,
		log:     logger.GetLogger().WithField("component", "series_handler"),
	}
}

// Register mounts the handler's routes on the app.
func (h *SeriesHandler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api/v1")
	api.Get("/interest-over-time", h.InterestOverTime)
}

func (h *SeriesHandler) Health(c *fiber.Ctx) error {
	payload := fiber.Map{"status": "ok"}
	if h.stats != nil {
		payload["upstream"] = h.stats.Stats()
	}
	return c.JSON(payload)
}

// InterestOverTime serves GET /api/v1/interest-over-time.
// Query parameters: keywords (comma-separated, required), timeframe, geo.
func (h *SeriesHandler) InterestOverTime(c *fiber.Ctx) error {
	spec := trends.QuerySpec{
		Keywords:  splitKeywords(c.Query("keywords")),
		Timeframe: c.Query("timeframe", DefaultTimeframe),
		Geo:       c.Query("geo"),
	}

	if err := spec.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records, err := h.service.InterestOverTime(c.Context(), spec)
	if err != nil {
		return h.renderError(c, spec, err)
	}

	return c.JSON(fiber.Map{
		"keywords": spec.Keywords,
		"rows":     len(records),
		"records":  records,
	})
}

func (h *SeriesHandler) renderError(c *fiber.Ctx, spec trends.QuerySpec, err error) error {
	if errors.Is(err, trends.ErrEmptyResult) {
		return c.JSON(fiber.Map{
			"keywords": spec.Keywords,
			"rows":     0,
			"records":  []trends.Record{},
			"empty":    true,
		})
	}

	var ue *trends.UpstreamError
	if errors.As(err, &ue) {
		status := fiber.StatusBadGateway
		if ue.Kind == trends.KindRateLimited {
			status = fiber.StatusTooManyRequests
		}
		h.log.WithError(err).WithField("kind", ue.Kind.String()).Warn("Upstream query failed")
		return c.Status(status).JSON(fiber.Map{
			"error": "upstream trends query failed",
			"kind":  ue.Kind.String(),
		})
	}

	h.log.WithError(err).Error("Series request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

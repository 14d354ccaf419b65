package api

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/classeval/collection-api/internal/collection/application"
)

// Handler wires the action endpoint to application services.
// 1リクエスト=1ディスパッチの単純な状態機械で、セッション状態は持たない。
type Handler struct {
	logger      *log.Logger
	schedules   application.ScheduleService
	evaluations application.EvaluationService
	status      application.StatusService
	location    *time.Location
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *log.Logger
	Schedules   application.ScheduleService
	Evaluations application.EvaluationService
	Status      application.StatusService
	Location    *time.Location
}

// NewHandler constructs the action endpoint handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		schedules:   cfg.Schedules,
		evaluations: cfg.Evaluations,
		status:      cfg.Status,
		location:    cfg.Location,
	}
}

// Register mounts the GET/POST action routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.actionGetHandler())
	r.Post("/", h.actionPostHandler())
}

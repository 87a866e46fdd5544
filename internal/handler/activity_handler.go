package handler

import (
	"net/http"

	"va-backend/internal/service"
	"va-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *logger.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List handles GET /api/activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, activities)
}

// GetByID handles GET /api/activities/{id}
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	activity, svcErr := h.activityService.GetByID(r.Context(), id)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondData(w, http.StatusOK, activity)
}

// RegisterRoutes mounts the activity routes
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
	})
}

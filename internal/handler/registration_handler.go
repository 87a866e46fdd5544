package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"va-backend/internal/domain"
	"va-backend/internal/middleware"
	"va-backend/internal/service"
	"va-backend/pkg/errors"
	"va-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type RegistrationHandler struct {
	registrationService *service.RegistrationService
	logger              *logger.Logger
}

func NewRegistrationHandler(registrationService *service.RegistrationService, logger *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// Submit handles POST /api/activity-registrations
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.SubmitRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil))
		return
	}

	if err := h.validateSubmitRequest(&req); err != nil {
		respondError(w, errors.NewValidationError(err.Error(), nil))
		return
	}

	var userID *int64
	if user := middleware.UserFromContext(ctx); user != nil {
		userID = &user.ID
	}

	reg, err := h.registrationService.Submit(ctx, userID, &req)
	if err != nil {
		h.logger.WithError(err).Warn("Registration submission failed")
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "Registration submitted", reg)
}

// GetByID handles GET /api/activity-registrations/{id}
func (h *RegistrationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	reg, svcErr := h.registrationService.GetByID(r.Context(), id)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondData(w, http.StatusOK, reg)
}

// ListByActivity handles GET /api/activity-registrations/activity/{activityId}
func (h *RegistrationHandler) ListByActivity(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r, "activityId")
	if err != nil {
		respondError(w, err)
		return
	}

	var status *domain.RegistrationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.RegistrationStatus(raw)
		status = &s
	}

	regs, svcErr := h.registrationService.ListByActivity(r.Context(), activityID, status)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondData(w, http.StatusOK, regs)
}

// ListByUser handles GET /api/activity-registrations/user/{userId}
func (h *RegistrationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	regs, svcErr := h.registrationService.ListByUser(r.Context(), userID)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondData(w, http.StatusOK, regs)
}

// ListAll handles GET /api/activity-registrations
func (h *RegistrationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, regs)
}

// PendingNotifications handles GET /api/activity-registrations/notifications/pending
func (h *RegistrationHandler) PendingNotifications(w http.ResponseWriter, r *http.Request) {
	views, err := h.registrationService.PendingNotifications(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, views)
}

// UpdateStatus handles PUT /api/activity-registrations/{id}/status
func (h *RegistrationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req domain.UpdateStatusRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil))
		return
	}

	reg, svcErr := h.registrationService.UpdateStatus(r.Context(), id, req.Status)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondMessage(w, http.StatusOK, "Registration status updated", reg)
}

// Delete handles DELETE /api/activity-registrations/{id}
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if svcErr := h.registrationService.Delete(r.Context(), id); svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondMessage(w, http.StatusOK, "Registration deleted", map[string]bool{"deleted": true})
}

// Check handles GET /api/activity-registrations/check/{activityId}
func (h *RegistrationHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := middleware.UserFromContext(ctx)
	if user == nil {
		respondError(w, errors.NewAuthenticationError("Authentication required"))
		return
	}

	activityID, err := pathID(r, "activityId")
	if err != nil {
		respondError(w, err)
		return
	}

	reg, svcErr := h.registrationService.CheckRegistration(ctx, activityID, user.ID)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success       bool                 `json:"success"`
		Data          *domain.Registration `json:"data"`
		HasRegistered bool                 `json:"hasRegistered"`
	}{
		Success:       true,
		Data:          reg,
		HasRegistered: reg != nil,
	})
}

// RegisterRoutes mounts the registration routes. Mutating admin routes carry
// auth + staff middleware supplied by the caller.
func (h *RegistrationHandler) RegisterRoutes(r chi.Router, auth, optionalAuth, staff func(http.Handler) http.Handler) {
	r.Route("/activity-registrations", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/check/{activityId}", h.Check)
			r.Get("/user/{userId}", h.ListByUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth, staff)
			r.Get("/", h.ListAll)
			r.Get("/notifications/pending", h.PendingNotifications)
			r.Get("/activity/{activityId}", h.ListByActivity)
			r.Get("/{id}", h.GetByID)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *RegistrationHandler) validateSubmitRequest(req *domain.SubmitRegistrationRequest) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("activity_id is required")
	}

	if len(strings.TrimSpace(req.FullName)) < 2 {
		return fmt.Errorf("full name is required (min 2 characters)")
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("valid email is required")
	}

	if len(req.Phone) < 8 {
		return fmt.Errorf("phone number is required (min 8 digits)")
	}

	if !domain.ValidGender(req.Gender) {
		return fmt.Errorf("gender must be male, female or other")
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s", name), nil)
	}
	return id, nil
}

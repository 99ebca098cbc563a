package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/usecase"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы Driver Service
type HTTPHandler struct {
	registerUC        in.RegisterUseCase
	setAvailabilityUC in.SetAvailabilityUseCase
	respondUC         in.RespondUseCase
	startTripUC       in.StartTripUseCase
	markArrivalUC     in.MarkArrivalUseCase
	completeTripUC    in.CompleteTripUseCase
	log               *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	registerUC in.RegisterUseCase,
	setAvailabilityUC in.SetAvailabilityUseCase,
	respondUC in.RespondUseCase,
	startTripUC in.StartTripUseCase,
	markArrivalUC in.MarkArrivalUseCase,
	completeTripUC in.CompleteTripUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		registerUC:        registerUC,
		setAvailabilityUC: setAvailabilityUC,
		respondUC:         respondUC,
		startTripUC:       startTripUC,
		markArrivalUC:     markArrivalUC,
		completeTripUC:    completeTripUC,
		log:               log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты (все под ролью DRIVER)
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, driverAuth func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /drivers/register", driverAuth(h.handleRegister))
	mux.HandleFunc("POST /drivers/availability", driverAuth(h.handleSetAvailability))
	mux.HandleFunc("POST /trips/{id}/response", driverAuth(h.handleRespond))
	mux.HandleFunc("POST /trips/{id}/start", driverAuth(h.handleStartTrip))
	mux.HandleFunc("POST /trips/{id}/arrive", driverAuth(h.handleMarkArrival))
	mux.HandleFunc("POST /trips/{id}/complete", driverAuth(h.handleCompleteTrip))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"driver"}`))
}

// RegisterHTTPRequest — HTTP DTO регистрации профиля
type RegisterHTTPRequest struct {
	DisplayName  string `json:"display_name"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
}

// handleRegister обрабатывает POST /drivers/register
func (h *HTTPHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RegisterHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.registerUC.Execute(r.Context(), in.RegisterInput{
		AccountID:    AccountIDFromContext(r.Context()),
		DisplayName:  req.DisplayName,
		VehiclePlate: req.VehiclePlate,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, output)
}

// SetAvailabilityHTTPRequest — HTTP DTO смены статуса
type SetAvailabilityHTTPRequest struct {
	Online bool `json:"online"`
}

// handleSetAvailability обрабатывает POST /drivers/availability
func (h *HTTPHandler) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req SetAvailabilityHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.setAvailabilityUC.Execute(r.Context(), in.SetAvailabilityInput{
		AccountID: AccountIDFromContext(r.Context()),
		Online:    req.Online,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// RespondHTTPRequest — HTTP DTO ответа на предложение
type RespondHTTPRequest struct {
	Accepted bool `json:"accepted"`
}

// handleRespond обрабатывает POST /trips/{id}/response
func (h *HTTPHandler) handleRespond(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RespondHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.respondUC.Execute(r.Context(), in.RespondInput{
		AccountID: AccountIDFromContext(r.Context()),
		TripID:    r.PathValue("id"),
		Accepted:  req.Accepted,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// handleStartTrip обрабатывает POST /trips/{id}/start
func (h *HTTPHandler) handleStartTrip(w http.ResponseWriter, r *http.Request) {
	h.handleJobTransition(w, r, h.startTripUC.Execute)
}

// handleMarkArrival обрабатывает POST /trips/{id}/arrive
func (h *HTTPHandler) handleMarkArrival(w http.ResponseWriter, r *http.Request) {
	h.handleJobTransition(w, r, h.markArrivalUC.Execute)
}

// handleCompleteTrip обрабатывает POST /trips/{id}/complete
func (h *HTTPHandler) handleCompleteTrip(w http.ResponseWriter, r *http.Request) {
	h.handleJobTransition(w, r, h.completeTripUC.Execute)
}

func (h *HTTPHandler) handleJobTransition(
	w http.ResponseWriter,
	r *http.Request,
	execute func(ctx context.Context, input in.JobTransitionInput) (*in.JobTransitionOutput, error),
) {
	output, err := execute(r.Context(), in.JobTransitionInput{
		AccountID: AccountIDFromContext(r.Context()),
		TripID:    r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// handleUseCaseError маппит доменные ошибки на HTTP статусы
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	var illegal *tripdomain.IllegalTransitionError
	var conflict *tripdomain.StatusConflictError

	switch {
	case errors.Is(err, domain.ErrDriverNotFound):
		h.respondError(w, http.StatusNotFound, "driver profile not found")
	case errors.Is(err, tripdomain.ErrTripNotFound):
		h.respondError(w, http.StatusNotFound, "trip not found")
	case errors.Is(err, usecase.ErrMissingDisplayName):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDriverBusy):
		h.respondError(w, http.StatusConflict, "finish the current trip first")
	case errors.Is(err, tripdomain.ErrUnauthorized):
		h.respondError(w, http.StatusForbidden, "not your assignment")
	case errors.As(err, &illegal):
		h.respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "illegal transition",
			"from":  illegal.From,
			"to":    illegal.To,
		})
	case errors.As(err, &conflict):
		h.respondJSON(w, http.StatusConflict, map[string]string{
			"error":    "status conflict",
			"expected": conflict.Expected,
			"actual":   conflict.Actual,
		})
	default:
		h.log.Error(logger.Entry{
			Action:  "driver_usecase_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondJSON отправляет JSON ответ
func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(logger.Entry{
			Action:  "encode_driver_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

// respondError отправляет JSON с ошибкой
func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

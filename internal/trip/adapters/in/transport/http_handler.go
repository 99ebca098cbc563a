package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы Trip Service
type HTTPHandler struct {
	requestTripUC   in.RequestTripUseCase
	getTripUC       in.GetTripUseCase
	getCustomerUC   in.GetTripCustomerUseCase
	confirmTripUC   in.ConfirmTripUseCase
	assignDriverUC  in.AssignDriverUseCase
	cancelTripUC    in.CancelTripUseCase
	recordPaymentUC in.RecordPaymentUseCase
	log             *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	requestTripUC in.RequestTripUseCase,
	getTripUC in.GetTripUseCase,
	getCustomerUC in.GetTripCustomerUseCase,
	confirmTripUC in.ConfirmTripUseCase,
	assignDriverUC in.AssignDriverUseCase,
	cancelTripUC in.CancelTripUseCase,
	recordPaymentUC in.RecordPaymentUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		requestTripUC:   requestTripUC,
		getTripUC:       getTripUC,
		getCustomerUC:   getCustomerUC,
		confirmTripUC:   confirmTripUC,
		assignDriverUC:  assignDriverUC,
		cancelTripUC:    cancelTripUC,
		recordPaymentUC: recordPaymentUC,
		log:             log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты.
// optionalAuth подмешивает account из JWT, если он есть; создание заявки
// доступно и гостю. adminAuth требует роль ADMIN.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, optionalAuth, adminAuth func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /trips", optionalAuth(h.handleRequestTrip))
	mux.HandleFunc("GET /trips/{id}", optionalAuth(h.handleGetTrip))
	mux.HandleFunc("GET /trips/{id}/customer", adminAuth(h.handleGetTripCustomer))
	mux.HandleFunc("POST /trips/{id}/confirm", adminAuth(h.handleConfirmTrip))
	mux.HandleFunc("POST /trips/{id}/assign", adminAuth(h.handleAssignDriver))
	mux.HandleFunc("POST /trips/{id}/cancel", optionalAuth(h.handleCancelTrip))
	mux.HandleFunc("POST /trips/{id}/payment", adminAuth(h.handleRecordPayment))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"trip"}`))
}

// RequestTripHTTPRequest — HTTP DTO для создания заявки
type RequestTripHTTPRequest struct {
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	PickupLocation  string   `json:"pickup_location"`
	DropoffLocation string   `json:"dropoff_location"`
	PickupLat       *float64 `json:"pickup_lat,omitempty"`
	PickupLng       *float64 `json:"pickup_lng,omitempty"`
	DropoffLat      *float64 `json:"dropoff_lat,omitempty"`
	DropoffLng      *float64 `json:"dropoff_lng,omitempty"`
}

// handleRequestTrip обрабатывает POST /trips
func (h *HTTPHandler) handleRequestTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RequestTripHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	input := in.RequestTripInput{
		AccountID:       AccountIDFromContext(ctx),
		Email:           req.Email,
		Phone:           req.Phone,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DropoffLat:      req.DropoffLat,
		DropoffLng:      req.DropoffLng,
	}

	output, err := h.requestTripUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

// handleGetTrip обрабатывает GET /trips/{id}
func (h *HTTPHandler) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.getTripUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, trip)
}

// handleGetTripCustomer обрабатывает GET /trips/{id}/customer
func (h *HTTPHandler) handleGetTripCustomer(w http.ResponseWriter, r *http.Request) {
	output, err := h.getCustomerUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// handleConfirmTrip обрабатывает POST /trips/{id}/confirm
func (h *HTTPHandler) handleConfirmTrip(w http.ResponseWriter, r *http.Request) {
	output, err := h.confirmTripUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// AssignDriverHTTPRequest — HTTP DTO для назначения водителя
type AssignDriverHTTPRequest struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name,omitempty"`
}

// handleAssignDriver обрабатывает POST /trips/{id}/assign
func (h *HTTPHandler) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req AssignDriverHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	if req.DriverID == "" {
		h.respondError(w, http.StatusBadRequest, "driver_id is required")
		return
	}

	output, err := h.assignDriverUC.Execute(r.Context(), in.AssignDriverInput{
		TripID:     r.PathValue("id"),
		DriverID:   req.DriverID,
		DriverName: req.DriverName,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// handleCancelTrip обрабатывает POST /trips/{id}/cancel
func (h *HTTPHandler) handleCancelTrip(w http.ResponseWriter, r *http.Request) {
	output, err := h.cancelTripUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// RecordPaymentHTTPRequest — HTTP DTO подтверждения оплаты
type RecordPaymentHTTPRequest struct {
	AutoConfirm bool `json:"auto_confirm,omitempty"`
}

// handleRecordPayment обрабатывает POST /trips/{id}/payment
func (h *HTTPHandler) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RecordPaymentHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.recordPaymentUC.Execute(r.Context(), in.RecordPaymentInput{
		TripID:      r.PathValue("id"),
		AutoConfirm: req.AutoConfirm,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, output)
}

// handleUseCaseError маппит доменные ошибки на HTTP статусы.
// Недопустимый переход — 422, проигранная гонка — 409 (вызывающий
// перечитывает состояние и решает сам).
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	var illegal *domain.IllegalTransitionError
	var conflict *domain.StatusConflictError

	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		h.respondError(w, http.StatusNotFound, "trip not found")
	case errors.Is(err, domain.ErrMissingLocation),
		errors.Is(err, domain.ErrMissingContact),
		errors.Is(err, domain.ErrDriverNotAvailable),
		errors.Is(err, domain.ErrNegativeCost):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		h.respondError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, domain.ErrCustomerNotResolved):
		h.respondError(w, http.StatusServiceUnavailable, "customer not resolved yet, retry shortly")
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
			Action:  "trip_usecase_error",
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
			Action:  "encode_trip_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

// respondError отправляет JSON с ошибкой
func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/usecase"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы Identity Service
type HTTPHandler struct {
	listCustomersUC in.ListCustomersUseCase
	getOverviewUC   in.GetOverviewUseCase
	createAccountUC in.CreateAccountUseCase
	listAccountsUC  in.ListAccountsUseCase
	log             *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	listCustomersUC in.ListCustomersUseCase,
	getOverviewUC in.GetOverviewUseCase,
	createAccountUC in.CreateAccountUseCase,
	listAccountsUC in.ListAccountsUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		listCustomersUC: listCustomersUC,
		getOverviewUC:   getOverviewUC,
		createAccountUC: createAccountUC,
		listAccountsUC:  listAccountsUC,
		log:             log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, adminAuth func(http.HandlerFunc) http.HandlerFunc) {
	// liveness probe (без аутентификации)
	mux.HandleFunc("GET /health", h.handleHealth)

	// admin endpoints (требуют ADMIN роль)
	mux.HandleFunc("GET /admin/customers", adminAuth(h.handleListCustomers))
	mux.HandleFunc("GET /admin/overview", adminAuth(h.handleGetOverview))
	mux.HandleFunc("POST /admin/accounts", adminAuth(h.handleCreateAccount))
	mux.HandleFunc("GET /admin/accounts", adminAuth(h.handleListAccounts))
}

// handleHealth обрабатывает health check
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"identity"}`))
}

// handleListCustomers обрабатывает GET /admin/customers
func (h *HTTPHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := in.ListCustomersInput{
		SourceTag: query.Get("source"),
		Limit:     parseIntParam(query.Get("limit"), 50),
		Offset:    parseIntParam(query.Get("offset"), 0),
	}

	output, err := h.listCustomersUC.Execute(r.Context(), input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleGetOverview обрабатывает GET /admin/overview
func (h *HTTPHandler) handleGetOverview(w http.ResponseWriter, r *http.Request) {
	output, err := h.getOverviewUC.Execute(r.Context(), in.GetOverviewInput{})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// CreateAccountHTTPRequest — HTTP DTO для создания аккаунта
type CreateAccountHTTPRequest struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// handleCreateAccount обрабатывает POST /admin/accounts
func (h *HTTPHandler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CreateAccountHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "parse_create_account_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	if req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	input := in.CreateAccountInput{
		Email:       req.Email,
		Phone:       req.Phone,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        req.Role,
		Provider:    req.Provider,
	}

	output, err := h.createAccountUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

// handleListAccounts обрабатывает GET /admin/accounts
func (h *HTTPHandler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := in.ListAccountsInput{
		Role:   query.Get("role"),
		Status: query.Get("status"),
		Limit:  parseIntParam(query.Get("limit"), 50),
		Offset: parseIntParam(query.Get("offset"), 0),
	}

	output, err := h.listAccountsUC.Execute(r.Context(), input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleUseCaseError маппит ошибки use case на HTTP статусы
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrAccountAlreadyExists):
		h.respondError(w, http.StatusConflict, "account already exists")
	case errors.Is(err, usecase.ErrMissingIdentity):
		h.respondError(w, http.StatusBadRequest, "email or phone is required")
	case errors.Is(err, usecase.ErrInvalidRole):
		h.respondError(w, http.StatusBadRequest, "invalid role")
	case errors.Is(err, usecase.ErrWeakPassword):
		h.respondError(w, http.StatusBadRequest, "password too short (minimum 8 characters)")
	case errors.Is(err, usecase.ErrSnapshotNotReady):
		h.respondError(w, http.StatusServiceUnavailable, "customer directory is still warming up")
	default:
		h.log.Error(logger.Entry{
			Action:  "identity_usecase_error",
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
			Action:  "encode_identity_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

// respondError отправляет JSON с ошибкой
func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func parseIntParam(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}

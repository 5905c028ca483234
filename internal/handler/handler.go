// Package handler содержит HTTP-обработчики API кредитной системы.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/credit-system/internal/apperror"
	"github.com/mmeshcher/credit-system/internal/dto"
	"github.com/mmeshcher/credit-system/internal/model"
	"github.com/mmeshcher/credit-system/internal/validation"
)

// CustomerService определяет операции над клиентами, используемые HTTP-обработчиками.
type CustomerService interface {
	Save(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CreditService определяет операции над кредитами, используемые HTTP-обработчиками.
type CreditService interface {
	Save(ctx context.Context, credit model.Credit) (*model.Credit, error)
	FindAllByCustomer(ctx context.Context, customerID int64) ([]model.Credit, error)
	FindByCreditCode(ctx context.Context, customerID int64, code uuid.UUID) (*model.Credit, error)
}

// Handler реализует HTTP-обработчики API кредитной системы.
type Handler struct {
	customers CustomerService
	credits   CreditService
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(customers CustomerService, credits CreditService, v *validation.Validator, logger *zap.Logger) *Handler {
	return &Handler{
		customers: customers,
		credits:   credits,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveCustomer регистрирует нового клиента.
func (h *Handler) SaveCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	customer := req.ToCustomer()
	if err := h.customers.Save(r.Context(), &customer); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.NewCustomerView(customer))
}

// FindCustomer возвращает клиента по идентификатору из пути.
func (h *Handler) FindCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	customer, err := h.customers.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.NewCustomerView(*customer))
}

// UpdateCustomer изменяет имя, доход и адрес клиента.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("customerId"), "customerId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req dto.CustomerUpdateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	customer, err := h.customers.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	req.Apply(customer)
	if err := h.customers.Save(r.Context(), customer); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.NewCustomerView(*customer))
}

// DeleteCustomer удаляет клиента.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveCredit оформляет кредит на существующего клиента.
func (h *Handler) SaveCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	credit, err := h.credits.Save(r.Context(), req.ToCredit())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.NewCreditView(*credit))
}

// FindCredits возвращает кредиты клиента в кратком виде.
func (h *Handler) FindCredits(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseID(r.URL.Query().Get("customerId"), "customerId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	credits, err := h.credits.FindAllByCustomer(r.Context(), customerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.NewCreditListViews(credits))
}

// FindCredit возвращает кредит клиента по коду.
func (h *Handler) FindCredit(w http.ResponseWriter, r *http.Request) {
	code, err := uuid.Parse(chi.URLParam(r, "creditCode"))
	if err != nil {
		h.writeError(w, r, apperror.Validation(map[string]string{"creditCode": "Invalid credit code"}))
		return
	}

	customerID, err := parseID(r.URL.Query().Get("customerId"), "customerId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	credit, err := h.credits.FindByCreditCode(r.Context(), customerID, code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.NewCreditView(*credit))
}

func (h *Handler) decodeAndValidate(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Validation(map[string]string{"body": "Malformed JSON request"})
	}

	return h.validator.Struct(v)
}

func parseID(raw, field string) (int64, error) {
	if raw == "" {
		return 0, apperror.Validation(map[string]string{field: "Required parameter is missing"})
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(map[string]string{field: "Must be a positive integer"})
	}

	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

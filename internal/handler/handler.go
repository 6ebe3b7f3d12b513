// Package handler содержит HTTP-обработчики API магазина.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/retail-store/internal/account"
	"github.com/mmeshcher/retail-store/internal/middleware"
	"github.com/mmeshcher/retail-store/internal/model"
	"github.com/mmeshcher/retail-store/internal/repository"
	"github.com/mmeshcher/retail-store/internal/service"
	"github.com/mmeshcher/retail-store/internal/store"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	CreateCustomer(ctx context.Context, balance int64, creditAllowed, vip bool) (*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	Deposit(ctx context.Context, customerID, amount int64) (*model.Customer, error)
	Withdraw(ctx context.Context, customerID, amount int64) (account.Outcome, *model.Customer, error)
	CreateProduct(ctx context.Context, name string, price, quantity int64) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	Buy(ctx context.Context, productID, customerID int64) (*model.Product, *model.Customer, error)
}

// Handler реализует HTTP-обработчики API магазина.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	metrics        http.Handler
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
// metrics может быть nil, тогда маршрут /metrics не регистрируется.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, metrics http.Handler) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
		metrics:        metrics,
	}
}

type customerRequest struct {
	Balance       int64 `json:"balance"`
	CreditAllowed bool  `json:"credit_allowed"`
	VIP           bool  `json:"vip"`
}

type customerResponse struct {
	ID            int64 `json:"id"`
	Balance       int64 `json:"balance"`
	CreditAllowed bool  `json:"credit_allowed"`
	VIP           bool  `json:"vip"`
}

func newCustomerResponse(c *model.Customer) customerResponse {
	return customerResponse{
		ID:            c.ID,
		Balance:       c.Balance,
		CreditAllowed: c.CreditAllowed,
		VIP:           c.VIP,
	}
}

type productRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type productResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

func newProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type withdrawResponse struct {
	Outcome  string           `json:"outcome"`
	Customer customerResponse `json:"customer"`
}

type buyResponse struct {
	Product  productResponse  `json:"product"`
	Customer customerResponse `json:"customer"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// CreateCustomer регистрирует покупателя и устанавливает cookie с его идентификатором.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), req.Balance, req.CreditAllowed, req.VIP)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.authMiddleware.SetAuthCookie(w, c.ID)
	writeJSON(w, http.StatusCreated, newCustomerResponse(c))
}

// GetCustomer возвращает состояние счёта текущего покупателя.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.writeError(w, err, zap.Int64("customerID", customerID))
		return
	}

	writeJSON(w, http.StatusOK, newCustomerResponse(c))
}

// Deposit пополняет счёт текущего покупателя.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	c, err := h.service.Deposit(r.Context(), customerID, req.Amount)
	if err != nil {
		h.writeError(w, err, zap.Int64("customerID", customerID))
		return
	}

	writeJSON(w, http.StatusOK, newCustomerResponse(c))
}

// Withdraw списывает средства со счёта текущего покупателя.
// Отказ по кредитному лимиту возвращается со статусом 200 и значением outcome.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	outcome, c, err := h.service.Withdraw(r.Context(), customerID, req.Amount)
	if err != nil {
		h.writeError(w, err, zap.Int64("customerID", customerID))
		return
	}

	writeJSON(w, http.StatusOK, withdrawResponse{
		Outcome:  string(outcome),
		Customer: newCustomerResponse(c),
	})
}

// CreateProduct добавляет товар в каталог.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.writeError(w, err, zap.String("name", req.Name))
		return
	}

	writeJSON(w, http.StatusCreated, newProductResponse(p))
}

// GetProduct возвращает товар по идентификатору из пути.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeError(w, err, zap.Int64("productID", productID))
		return
	}

	writeJSON(w, http.StatusOK, newProductResponse(p))
}

// Buy продаёт текущему покупателю одну единицу товара.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, c, err := h.service.Buy(r.Context(), productID, customerID)
	if err != nil {
		h.writeError(w, err, zap.Int64("productID", productID), zap.Int64("customerID", customerID))
		return
	}

	writeJSON(w, http.StatusOK, buyResponse{
		Product:  newProductResponse(p),
		Customer: newCustomerResponse(c),
	})
}

// writeError переводит доменные ошибки в HTTP-статусы. Остальные ошибки логируются как внутренние.
func (h *Handler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound), errors.Is(err, repository.ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, service.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrOutOfStock):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrPaymentFailure):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		h.logger.Error("request error", append(fields, zap.Error(err))...)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

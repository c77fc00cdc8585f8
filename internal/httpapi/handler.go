package httpapi

import (
	"net/http"
	"strconv"

	"storefront-be/internal/apperr"
	"storefront-be/internal/category"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	users      user.Service
	categories category.Repository
	products   product.Service
	orders     order.Service
	payments   payment.IntentProvider
}

func NewHandler(
	users user.Service,
	categories category.Repository,
	products product.Service,
	orders order.Service,
	payments payment.IntentProvider,
) *Handler {
	return &Handler{
		users:      users,
		categories: categories,
		products:   products,
		orders:     orders,
		payments:   payments,
	}
}

type registerRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the body of both register and authenticate.
type authResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	token, u, err := h.users.Register(r.Context(), user.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
		Role:      user.Role(req.Role),
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:     token,
		Role:      string(u.Role),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	})
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	token, u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:     token,
		Role:      string(u.Role),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

type productRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	ImageURL      *string          `json:"imageUrl"`
	StockQuantity *int             `json:"stockQuantity"`
	CategoryID    *int             `json:"categoryId"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	params := product.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
	if req.Price != nil {
		params.Price = *req.Price
	}
	if req.StockQuantity != nil {
		params.StockQuantity = *req.StockQuantity
	}

	p, err := h.products.Create(r.Context(), params)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.products.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	params := product.UpdateParams{
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
	if req.Name != "" {
		params.Name = &req.Name
	}
	if req.Description != "" {
		params.Description = &req.Description
	}

	p, err := h.products.Update(r.Context(), id, params)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UploadProducts(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(r.Context(), w, apperr.Validation("file is required"))
		return
	}
	defer file.Close()

	imported, err := h.products.ImportCSV(r.Context(), file, product.DefaultUploadStock)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("product upload aborted",
			zap.Int("imported", imported),
			zap.Error(err),
		)
		writeError(r.Context(), w, err)
		return
	}

	writeText(w, http.StatusOK, "Products uploaded successfully")
}

type orderRequest struct {
	Items []order.ItemRequest `json:"items"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(r.Context(), w, apperr.Auth("authentication required"))
		return
	}

	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if _, err := h.orders.Place(r.Context(), identity.Email, req.Items); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeText(w, http.StatusOK, "Order placed successfully")
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	secret, err := h.payments.CreateIntent()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apperr.Validation("invalid product id")
	}
	return id, nil
}

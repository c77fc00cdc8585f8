package httpapi

import "net/http"

// NewRouter mounts every API route on a ServeMux.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/authenticate", h.Authenticate)

	mux.HandleFunc("GET /api/v1/categories", h.ListCategories)

	mux.HandleFunc("POST /api/v1/products", h.CreateProduct)
	mux.HandleFunc("GET /api/v1/products", h.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /api/v1/products/{id}", h.UpdateProduct)
	mux.HandleFunc("POST /api/v1/products/upload", h.UploadProducts)

	mux.HandleFunc("POST /api/v1/orders", h.PlaceOrder)

	mux.HandleFunc("POST /api/v1/payment/create-payment-intent", h.CreatePaymentIntent)

	return mux
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/credit-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware кредитной системы.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	// Logger стоит снаружи gzip: в журнал попадает размер ответа после сжатия.
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.SaveCustomer)
			r.Patch("/", h.UpdateCustomer)
			r.Get("/{id}", h.FindCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Post("/", h.SaveCredit)
			r.Get("/", h.FindCredits)
			r.Get("/{creditCode}", h.FindCredit)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

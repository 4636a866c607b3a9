package routes

import (
	"net/http"

	"github.com/benadictjacob/Inav-backend/internal/handlers"
	"github.com/benadictjacob/Inav-backend/internal/httputil"
	appmw "github.com/benadictjacob/Inav-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Options struct {
	Handler    *handlers.Handler
	Log        *zap.Logger
	CORSOrigin string
}

func New(opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(appmw.RequestLogger(opts.Log))
	r.Use(middleware.Recoverer)
	r.Use(appmw.SecureHeaders)

	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := opts.Handler

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/customers", h.ListCustomers)
		r.Get("/customers/{accountNumber}", h.GetCustomer)
		r.Post("/payments", h.CreatePayment)
		r.Get("/payments/{accountNumber}", h.GetPaymentHistory)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "", "Route not found")
	})

	return r
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/biztime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	// Logger should be built with httplog.SchemaECS attribute replacement.
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	companyHandler CompanyHandler,
	invoiceHandler InvoiceHandler,
	eventHandler EventStreamHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Resource not found")
	})

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", companyHandler.List)
		r.Post("/", companyHandler.Create)

		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", companyHandler.GetByCode)
			r.Put("/", companyHandler.Update)
			r.Delete("/", companyHandler.Delete)
		})
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", invoiceHandler.List)
		r.Post("/", invoiceHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", invoiceHandler.GetByID)
			r.Put("/", invoiceHandler.Update)
			r.Delete("/", invoiceHandler.Delete)
			r.Get("/pdf", invoiceHandler.GetPDF)
		})
	})

	r.Get("/events", eventHandler.Stream)

	return r
}

package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pets-catalog/internal/adapters/storage/memory"
	_ "pets-catalog/internal/docs" // registra el spec de swagger
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/middleware"
	"pets-catalog/internal/platform/logger"
	"pets-catalog/internal/web"
)

const metricsNamespace = "pets"

type Options struct {
	// Repos; si falta alguno se usa un store in-memory (modo dev / tests).
	Kinds kinds.Repository
	Pets  pets.Repository

	// Backend se informa en /health.
	Backend string

	Logger logger.Logger

	// Registry para /metrics; nil => uno nuevo (aislado por router).
	Registry *prometheus.Registry
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	kindRepo, petRepo := opts.Kinds, opts.Pets
	if kindRepo == nil || petRepo == nil {
		store := mem.NewStore()
		kindRepo, petRepo = store.Kinds(), store.Pets()
		if opts.Backend == "" {
			opts.Backend = "memory"
		}
	}

	// Services por módulo
	kindsSvc := kinds.NewService(kindRepo)
	petsSvc := pets.NewService(petRepo)

	pages, err := web.New(kindsSvc, petsSvc, log)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewMetrics(reg, metricsNamespace).Handler)
	// Recover va adentro: el 500 de un panic pasa por el log y las métricas.
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "backend": opts.Backend})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API JSON
	r.Route("/api", func(api chi.Router) {
		kinds.RegisterRoutes(api, kindsSvc)
		pets.RegisterRoutes(api, petsSvc)
	})

	// Páginas HTML
	pages.RegisterRoutes(r)

	return r, nil
}

package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/diwise/idmc-opendata/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type previewAPI struct {
	router chi.Router
	log    zerolog.Logger
}

//NewAPI serves the records of a dry run so that they can be inspected before publishing
func NewAPI(ctx context.Context, r chi.Router, store catalog.Store) API {
	return newPreviewAPI(ctx, r, store)
}

func newPreviewAPI(ctx context.Context, r chi.Router, store catalog.Store) *previewAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"text/csv", "application/json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("idmc-opendata", otelchi.WithChiRoutes(r)))

	a := &previewAPI{
		router: r,
		log:    log,
	}

	a.addDatasetHandlers(r, store)
	a.addProbeHandlers(r)

	return a
}

func (a *previewAPI) Start(port string) error {
	a.log.Info().Msgf("Starting idmc-opendata preview on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *previewAPI) addDatasetHandlers(r chi.Router, store catalog.Store) {
	r.Get("/api/datasets", handlers.NewRetrieveDatasetsHandler(a.log, store))
	r.Get("/api/datasets/{name}", handlers.NewRetrieveDatasetByNameHandler(a.log, store))
	r.Get("/api/datasets/{name}/resources/{resource}", handlers.NewRetrieveResourceHandler(a.log, store))
	r.Get("/api/views/{resourceID}", handlers.NewRetrieveResourceViewHandler(a.log, store))
}

func (a *previewAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idmc-opendata/api")

type datasetSummary struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Groups      []domain.Group `json:"groups"`
	DatasetDate string         `json:"dataset_date"`
	Resources   []string       `json:"resources"`
}

type datasetOut struct {
	*domain.Dataset
	Resources []domain.Resource `json:"resources"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func NewRetrieveDatasetsHandler(logger zerolog.Logger, store catalog.Store) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-datasets")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, r.Context())

		datasets := store.Datasets()
		summaries := make([]datasetSummary, 0, len(datasets))

		for _, ds := range datasets {
			s := datasetSummary{
				Name:        ds.Name,
				Title:       ds.Title,
				Groups:      ds.Groups,
				DatasetDate: ds.DatasetDate,
				Resources:   []string{},
			}
			for _, res := range ds.Resources {
				s.Resources = append(s.Resources, res.Name)
			}
			summaries = append(summaries, s)
		}

		err = writeJSON(w, dataResponse{Data: summaries})
		if err != nil {
			log.Error().Err(err).Msg("failed to write datasets")
		}
	})
}

func NewRetrieveDatasetByNameHandler(logger zerolog.Logger, store catalog.Store) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-dataset-by-name")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, r.Context())

		name, _ := url.QueryUnescape(chi.URLParam(r, "name"))

		ds, ok := store.Dataset(name)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		err = writeJSON(w, dataResponse{Data: datasetOut{Dataset: ds, Resources: ds.Resources}})
		if err != nil {
			log.Error().Err(err).Msgf("failed to write dataset %s", name)
		}
	})
}

//NewRetrieveResourceHandler serves the csv file behind a resource of a dataset
func NewRetrieveResourceHandler(logger zerolog.Logger, store catalog.Store) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-resource")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, r.Context())

		name, _ := url.QueryUnescape(chi.URLParam(r, "name"))
		resourceName, _ := url.QueryUnescape(chi.URLParam(r, "resource"))

		ds, ok := store.Dataset(name)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		for _, res := range ds.Resources {
			if res.Name != resourceName {
				continue
			}

			var contents []byte
			contents, err = os.ReadFile(res.FilePath)
			if err != nil {
				err = fmt.Errorf("failed to read resource %s: %w", res.FilePath, err)
				log.Error().Err(err).Msg("internal error")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			w.Header().Add("Content-Type", "text/csv")
			w.Write(contents)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	})
}

func NewRetrieveResourceViewHandler(logger zerolog.Logger, store catalog.Store) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-resource-view")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, r.Context())

		resourceID, _ := url.QueryUnescape(chi.URLParam(r, "resourceID"))

		view, ok := store.View(resourceID)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		err = writeJSON(w, dataResponse{Data: view})
		if err != nil {
			log.Error().Err(err).Msgf("failed to write view for %s", resourceID)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)

	return err
}

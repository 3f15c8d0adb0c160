package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diwise/idmc-opendata/internal/pkg/application/config"
	"github.com/diwise/idmc-opendata/internal/pkg/application/countries"
	"github.com/diwise/idmc-opendata/internal/pkg/application/indicators"
	"github.com/diwise/idmc-opendata/internal/pkg/application/locations"
	"github.com/diwise/idmc-opendata/internal/pkg/application/quickcharts"
	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/fetcher"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var tracer = otel.Tracer("idmc-opendata/pipeline")

//FailurePolicy decides what happens when a single country cannot be built or published
type FailurePolicy string

const (
	Skip  FailurePolicy = "skip"
	Abort FailurePolicy = "abort"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Skip:
		return Skip, nil
	case Abort:
		return Abort, nil
	}
	return "", fmt.Errorf("unknown failure policy %q, expected %q or %q", s, Skip, Abort)
}

type Summary struct {
	IndicatorDatasets int
	CountryDatasets   int
	Showcases         int
	Views             int
	Unresolved        []string
	Failed            []string
}

type Pipeline interface {
	Run(ctx context.Context) (*Summary, error)
}

func New(f fetcher.Fetcher, c catalog.Client, cfg *config.Config, folder string, policy FailurePolicy) Pipeline {
	return &pipeline{
		fetcher:    f,
		catalog:    c,
		lookup:     locations.NewWithISO3166(cfg.CountryNames()),
		sources:    indicators.Sources{DisplacementURL: cfg.DisplacementURL, DisasterURL: cfg.DisasterURL},
		indicators: cfg.Indicators,
		publisher:  cfg.Publisher(),
		folder:     folder,
		policy:     policy,
	}
}

type pipeline struct {
	fetcher    fetcher.Fetcher
	catalog    catalog.Client
	lookup     locations.Lookup
	sources    indicators.Sources
	indicators []config.Indicator
	publisher  domain.Publisher
	folder     string
	policy     FailurePolicy
}

//Run builds and publishes the world wide indicator datasets and then one dataset per country,
//in country code order
func (p *pipeline) Run(ctx context.Context) (*Summary, error) {
	var err error
	ctx, span := tracer.Start(ctx, "run")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	summary := &Summary{}

	result, err := indicators.BuildIndicatorDatasets(ctx, p.sources, p.fetcher, p.folder, p.indicators, p.publisher)
	if err != nil {
		err = fmt.Errorf("failed to build indicator datasets: %w", err)
		return summary, err
	}

	for _, ind := range result.Indicators {
		dataset := result.Datasets[ind.Key]

		if err = p.publish(ctx, dataset, result.Showcase, nil); err != nil {
			return summary, err
		}

		summary.IndicatorDatasets++
		summary.Views++
	}

	if summary.IndicatorDatasets > 0 {
		summary.Showcases++
	}

	codes := maps.Keys(result.RowsByCountry)
	slices.Sort(codes)

	for _, code := range codes {
		published, countryErr := p.country(ctx, result, code, summary)
		if countryErr == nil {
			if !published {
				summary.Unresolved = append(summary.Unresolved, code)
			}
			continue
		}

		if p.policy == Abort {
			err = countryErr
			return summary, err
		}

		log.Error().Err(countryErr).Msgf("skipping country %s", code)
		summary.Failed = append(summary.Failed, code)
	}

	log.Info().Msgf(
		"published %d indicator and %d country datasets, %d showcases and %d views (%d unresolved, %d failed)",
		summary.IndicatorDatasets, summary.CountryDatasets, summary.Showcases, summary.Views,
		len(summary.Unresolved), len(summary.Failed),
	)

	return summary, nil
}

func (p *pipeline) country(ctx context.Context, result *indicators.Result, code string, summary *Summary) (bool, error) {
	folder := filepath.Join(p.folder, code)

	dataset, showcase, emptyCols, err := countries.BuildCountryDataset(
		ctx, p.fetcher, p.lookup, folder,
		result.Indicators, code, result.RowsByCountry[code],
		result.Datasets, p.publisher,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build dataset for %s: %w", code, err)
	}

	if dataset == nil {
		return false, nil
	}

	if err = p.publish(ctx, dataset, showcase, emptyCols); err != nil {
		return false, err
	}

	summary.CountryDatasets++
	summary.Views++
	if showcase != nil {
		summary.Showcases++
	}

	return true, nil
}

func (p *pipeline) publish(ctx context.Context, dataset *domain.Dataset, showcase *domain.Showcase, emptyCols domain.EmptyColumns) error {
	if err := p.catalog.CreateOrUpdateDataset(ctx, dataset); err != nil {
		return fmt.Errorf("failed to publish dataset %s: %w", dataset.Name, err)
	}

	if showcase != nil {
		if err := p.catalog.CreateOrUpdateShowcase(ctx, showcase, dataset.Name); err != nil {
			return fmt.Errorf("failed to publish showcase for %s: %w", dataset.Name, err)
		}
	}

	view, err := quickcharts.BuildResourceView(dataset, emptyCols)
	if err != nil {
		return fmt.Errorf("failed to build quick charts for %s: %w", dataset.Name, err)
	}

	if err = p.catalog.CreateOrUpdateResourceView(ctx, view); err != nil {
		return fmt.Errorf("failed to publish quick charts for %s: %w", dataset.Name, err)
	}

	return nil
}

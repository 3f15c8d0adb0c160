package indicators

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/diwise/idmc-opendata/internal/pkg/application/config"
	"github.com/diwise/idmc-opendata/internal/pkg/application/slug"
	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/fetcher"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/workbook"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idmc-opendata/indicators")

const (
	WorldGroup string = "world"

	SourceNote string = "\n\nContains data from IDMC's [Global Internal Displacement Database](http://www.internal-displacement.org/database/displacement-data)."
)

//Sources are the locations of the displacement and disaster workbooks, in that order
type Sources struct {
	DisplacementURL string
	DisasterURL     string
}

//Result holds everything the country pass needs from the indicator pass
type Result struct {
	Datasets      map[string]*domain.Dataset
	Indicators    []domain.Indicator
	Showcase      *domain.Showcase
	RowsByCountry map[string]map[string][]domain.Row
}

func GlobalShowcase(publisher domain.Publisher) *domain.Showcase {
	return &domain.Showcase{
		Name:     "idmc-global-report-on-internal-displacement",
		Title:    "IDMC Global Report on Internal Displacement",
		Notes:    "Click the image on the right to go to the IDMC Global Report on Internal Displacement",
		URL:      "http://www.internal-displacement.org/global-report/grid2018/",
		ImageURL: "http://www.internal-displacement.org/global-report/grid2018/img/ogimage.jpg",
		Tags:     publisher.Tags,
	}
}

//BuildIndicatorDatasets downloads both workbooks and creates one world wide dataset per indicator.
//Indicators whose metadata cannot be fetched are skipped, a failed workbook download aborts the build.
func BuildIndicatorDatasets(ctx context.Context, sources Sources, f fetcher.Fetcher, folder string, indicators []config.Indicator, publisher domain.Publisher) (*Result, error) {
	var err error
	ctx, span := tracer.Start(ctx, "build-indicator-datasets")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	workbooks := []string{sources.DisplacementURL, sources.DisasterURL}
	if len(indicators) != len(workbooks) {
		err = fmt.Errorf("expected %d indicators, got %d", len(workbooks), len(indicators))
		return nil, err
	}

	result := &Result{
		Datasets:      map[string]*domain.Dataset{},
		Indicators:    []domain.Indicator{},
		Showcase:      GlobalShowcase(publisher),
		RowsByCountry: map[string]map[string][]domain.Row{},
	}

	for i, ind := range indicators {
		kv, metaErr := f.DownloadTabularKeyValue(ctx, ind.MetadataURL)
		if metaErr != nil {
			log.Error().Err(metaErr).Msgf("failed to fetch metadata for indicator %s, skipping it", ind.Key)
			continue
		}

		metadata := domain.NewIndicatorMetadata(kv)
		if metadata.Name == "" {
			log.Error().Msgf("metadata for indicator %s has no indicator name, skipping it", ind.Key)
			continue
		}

		var path string
		path, err = f.DownloadFile(ctx, workbooks[i], folder, ind.Key+".xlsx")
		if err != nil {
			err = fmt.Errorf("failed to download workbook for %s: %w", ind.Key, err)
			return nil, err
		}

		var headers domain.Headers
		var rows []domain.Row
		headers, rows, err = workbook.Read(path)
		if err != nil {
			return nil, err
		}

		indicator := domain.Indicator{Key: ind.Key, Headers: headers, Metadata: metadata}

		var dataset *domain.Dataset
		dataset, err = newIndicatorDataset(indicator, rows, folder, publisher)
		if err != nil {
			return nil, err
		}

		for _, r := range rows {
			byIndicator, ok := result.RowsByCountry[r.CountryCode]
			if !ok {
				byIndicator = map[string][]domain.Row{}
				result.RowsByCountry[r.CountryCode] = byIndicator
			}
			byIndicator[ind.Key] = append(byIndicator[ind.Key], r)
		}

		result.Datasets[ind.Key] = dataset
		result.Indicators = append(result.Indicators, indicator)

		log.Info().Msgf("built dataset %s from %d rows", dataset.Name, len(rows))
	}

	return result, nil
}

func newIndicatorDataset(indicator domain.Indicator, rows []domain.Row, folder string, publisher domain.Publisher) (*domain.Dataset, error) {
	metadata := indicator.Metadata

	dataset := domain.NewDataset("idmc-"+slug.Make(metadata.Name), metadata.Name, publisher, WorldGroup)
	dataset.Notes = metadata.Description + SourceNote
	dataset.MethodologyOther = metadata.Methodology
	dataset.Caveats = metadata.Caveats

	if dr, ok := domain.YearRange(rows); ok {
		dataset.DatasetDate = dr.String()
	}

	resource := domain.NewResource(indicator.Key, metadata.Name, true)
	resource.FilePath = filepath.Join(folder, resource.FileName())

	if err := workbook.WriteCSV(resource.FilePath, indicator.Headers, rows); err != nil {
		return nil, fmt.Errorf("failed to write resource %s: %w", resource.Name, err)
	}

	dataset.AddResource(resource)

	return dataset, nil
}

package countries

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diwise/idmc-opendata/internal/pkg/application/locations"
	"github.com/diwise/idmc-opendata/internal/pkg/application/slug"
	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/fetcher"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/workbook"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idmc-opendata/countries")

const (
	CountryPageURL   string = "http://www.internal-displacement.org/countries/%s/"
	CountryImageURL  string = "http://www.internal-displacement.org/sites/default/files/logo_0.png"
	DatasetNameStart string = "idmc idp data for "
)

//BuildCountryDataset slices the rows of one country into a dataset with one resource per indicator,
//following the order of indicators. A code that the lookup cannot resolve yields all nils and no error.
func BuildCountryDataset(
	ctx context.Context, f fetcher.Fetcher, lookup locations.Lookup, folder string,
	indicators []domain.Indicator, code string, rows map[string][]domain.Row,
	datasets map[string]*domain.Dataset, publisher domain.Publisher,
) (*domain.Dataset, *domain.Showcase, domain.EmptyColumns, error) {
	var err error
	ctx, span := tracer.Start(ctx, "build-country-dataset")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx).With().Str("country", code).Logger()

	countryName, ok := lookup.CountryName(code)
	if !ok {
		log.Info().Msgf("country code %s could not be resolved, skipping it", code)
		return nil, nil, nil, nil
	}

	available := make([]domain.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if _, ok := datasets[ind.Key]; ok {
			available = append(available, ind)
		}
	}

	if len(available) == 0 {
		err = fmt.Errorf("no indicator datasets to base %s on", code)
		return nil, nil, nil, err
	}

	template := datasets[available[0].Key]
	metadata := available[0].Metadata

	dataset := domain.NewDataset(slug.Make(DatasetNameStart+countryName), fmt.Sprintf("%s - %s", countryName, template.Title), publisher, strings.ToLower(code))
	dataset.Notes = template.Notes
	dataset.MethodologyOther = metadata.Methodology
	dataset.Caveats = metadata.Caveats

	slices := make([][]domain.Row, 0, len(available))

	for i, ind := range available {
		countryRows := rows[ind.Key]
		slices = append(slices, countryRows)

		resource := domain.NewResource(ind.Key, fmt.Sprintf("%s for %s", datasets[ind.Key].Title, countryName), i == 0)
		resource.FilePath = filepath.Join(folder, resource.FileName())

		if err = workbook.WriteCSV(resource.FilePath, ind.Headers, countryRows); err != nil {
			err = fmt.Errorf("failed to write resource %s for %s: %w", resource.Name, code, err)
			return nil, nil, nil, err
		}

		dataset.AddResource(resource)
	}

	if dr, ok := domain.YearRange(slices...); ok {
		dataset.DatasetDate = dr.String()
	} else {
		log.Warn().Msg("no rows with values, dataset date left empty")
	}

	emptyCols := domain.NewEmptyColumns(slices...)

	showcase := newShowcase(ctx, f, dataset, countryName, publisher)

	return dataset, showcase, emptyCols, nil
}

func newShowcase(ctx context.Context, f fetcher.Fetcher, dataset *domain.Dataset, countryName string, publisher domain.Publisher) *domain.Showcase {
	log := logging.GetFromContext(ctx)

	for _, candidate := range pageNames(countryName) {
		url := fmt.Sprintf(CountryPageURL, candidate)

		if err := f.Check(ctx, url); err != nil {
			log.Info().Msgf("no country page at %s: %s", url, err.Error())
			continue
		}

		return &domain.Showcase{
			Name:     dataset.Name + "-showcase",
			Title:    fmt.Sprintf("IDMC %s Summary Page", countryName),
			Notes:    fmt.Sprintf("Click the image on the right to go to the IDMC summary page for the %s dataset", countryName),
			URL:      url,
			ImageURL: CountryImageURL,
			Tags:     publisher.Tags,
		}
	}

	log.Warn().Msgf("no summary page found for %s, dataset will have no showcase", countryName)
	return nil
}

//pageNames lists the names IDMC may use for a country page, e.g. both
//"United Republic of Tanzania" and "Tanzania"
func pageNames(countryName string) []string {
	names := []string{countryName}

	if idx := strings.LastIndex(countryName, " of "); idx >= 0 {
		if short := strings.TrimSpace(countryName[idx+len(" of "):]); short != "" {
			names = append(names, short)
		}
	}

	return names
}

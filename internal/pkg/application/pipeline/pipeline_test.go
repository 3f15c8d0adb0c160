package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diwise/idmc-opendata/internal/pkg/application/config"
	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/diwise/idmc-opendata/internal/pkg/test/fixtures"
	"github.com/matryer/is"
)

func TestRunPublishesIndicatorsAndCountries(t *testing.T) {
	is := is.New(t)
	store := catalog.NewMemory()

	p := New(fixtures.Fetcher(t), store, testConfig(), t.TempDir(), Skip)
	summary, err := p.Run(context.Background())
	is.NoErr(err)

	is.Equal(summary.IndicatorDatasets, 2)
	is.Equal(summary.CountryDatasets, 2)          // AFG and TZA
	is.Equal(summary.Showcases, 3)                // the global showcase and one per country
	is.Equal(summary.Views, 4)                    // one view per dataset
	is.Equal(summary.Unresolved, []string{"AB9"}) // AB9 is not a known country
	is.Equal(len(summary.Failed), 0)

	is.Equal(len(store.Datasets()), 4)
	is.Equal(store.ShowcaseDatasets("idmc-global-report-on-internal-displacement"), []string{
		"idmc-internally-displaced-persons-idps",
		"idmc-internally-displaced-persons-idps-new-displacement-associated-with-disasters",
	})

	world, _ := store.Dataset("idmc-internally-displaced-persons-idps")
	worldView, found := store.View(world.Resources[0].ID)
	is.True(found)
	is.True(!strings.Contains(worldView.HXLPreviewConfig, ", ")) // indicator views use the compact form
	is.Equal(strings.Count(worldView.HXLPreviewConfig, `"hashCode"`), 3)

	tanzania, found := store.Dataset("idmc-idp-data-for-united-republic-of-tanzania")
	is.True(found)
	tanzaniaView, found := store.View(tanzania.Resources[0].ID)
	is.True(found)
	is.True(strings.Contains(tanzaniaView.HXLPreviewConfig, `"configVersion": 5`)) // country views use the spaced form
	is.Equal(strings.Count(tanzaniaView.HXLPreviewConfig, `"hashCode"`), 1)         // only the disaster column has values
}

func TestRunSkipsFailingCountry(t *testing.T) {
	is := is.New(t)
	c := failingFor("idmc-idp-data-for-afghanistan")

	summary, err := New(fixtures.Fetcher(t), c, testConfig(), t.TempDir(), Skip).Run(context.Background())
	is.NoErr(err)

	is.Equal(summary.Failed, []string{"AFG"})
	is.Equal(summary.CountryDatasets, 1) // TZA is still published
}

func TestRunAbortsOnFailingCountry(t *testing.T) {
	is := is.New(t)
	c := failingFor("idmc-idp-data-for-afghanistan")

	summary, err := New(fixtures.Fetcher(t), c, testConfig(), t.TempDir(), Abort).Run(context.Background())

	is.True(errors.Is(err, errRejected))
	is.Equal(summary.CountryDatasets, 0)
	is.Equal(summary.IndicatorDatasets, 2) // indicators are published before the countries
}

func TestRunFailsWhenIndicatorCannotBePublished(t *testing.T) {
	is := is.New(t)
	c := failingFor("idmc-internally-displaced-persons-idps")

	_, err := New(fixtures.Fetcher(t), c, testConfig(), t.TempDir(), Skip).Run(context.Background())

	is.True(errors.Is(err, errRejected)) // the skip policy only applies to countries
}

func TestParseFailurePolicy(t *testing.T) {
	is := is.New(t)

	policy, err := ParseFailurePolicy("")
	is.NoErr(err)
	is.Equal(policy, Skip)

	policy, err = ParseFailurePolicy(" ABORT ")
	is.NoErr(err)
	is.Equal(policy, Abort)

	_, err = ParseFailurePolicy("retry")
	is.True(err != nil)
}

var errRejected = errors.New("rejected")

func failingFor(datasetName string) *catalog.ClientMock {
	store := catalog.NewMemory()

	return &catalog.ClientMock{
		CreateOrUpdateDatasetFunc: func(ctx context.Context, dataset *domain.Dataset) error {
			if dataset.Name == datasetName {
				return errRejected
			}
			return store.CreateOrUpdateDataset(ctx, dataset)
		},
		CreateOrUpdateShowcaseFunc:     store.CreateOrUpdateShowcase,
		CreateOrUpdateResourceViewFunc: store.CreateOrUpdateResourceView,
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{
		DisplacementURL:     fixtures.DisplacementURL,
		DisasterURL:         fixtures.DisasterURL,
		Indicators:          fixtures.Indicators(),
		Maintainer:          fixtures.MaintainerID,
		OwnerOrg:            fixtures.OwnerOrgID,
		DataUpdateFrequency: "365",
		VocabularyID:        fixtures.VocabularyID,
		Tags:                []string{"HXL", "displacement"},
	}

	for code, name := range fixtures.CountryNames() {
		cfg.Countries = append(cfg.Countries, config.Country{Code: code, Name: name})
	}

	return cfg
}

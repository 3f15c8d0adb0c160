// Package fixtures builds IDMC shaped workbooks and a matching fetcher mock for tests
package fixtures

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diwise/idmc-opendata/internal/pkg/application/config"
	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/fetcher"
	"github.com/xuri/excelize/v2"
)

const (
	DisplacementURL string = "https://dada"
	DisasterURL     string = "https://wawa"

	DisplacementMetadataURL string = "https://lala"
	DisasterMetadataURL     string = "https://haha"

	DisplacementTitle string = "Internally displaced persons - IDPs"
	DisasterTitle     string = "Internally displaced persons - IDPs (new displacement associated with disasters)"

	MaintainerID string = "196196be-6037-4488-8b71-d786adf4c081"
	OwnerOrgID   string = "647d9d8c-4cac-4c33-b639-649aad1c2893"
	VocabularyID string = "4e61d464-4943-4e97-973a-84673c1aaa87"
)

func Indicators() []config.Indicator {
	return []config.Indicator{
		{Key: "displacement_data", MetadataURL: DisplacementMetadataURL},
		{Key: "disaster_data", MetadataURL: DisasterMetadataURL},
	}
}

func Publisher() domain.Publisher {
	tags := []domain.Tag{}
	for _, name := range []string{"hxl", "displacement", "internally displaced persons - idp", "violence and conflict"} {
		tags = append(tags, domain.Tag{Name: name, VocabularyID: VocabularyID})
	}

	return domain.Publisher{
		Maintainer:          MaintainerID,
		OwnerOrg:            OwnerOrgID,
		DataUpdateFrequency: "365",
		Tags:                tags,
	}
}

func CountryNames() map[string]string {
	return map[string]string{
		"AFG": "Afghanistan",
		"TZA": "United Republic of Tanzania",
	}
}

//Metadata returns the key/value page for an indicator, with or without methodology and caveats
func Metadata(name string, withDetails bool) map[string]string {
	kv := map[string]string{
		"Indicator Name":  name,
		"Long definition": "Description",
	}
	if withDetails {
		kv["Statistical concept and methodology"] = "Methodology"
		kv["Limitations and exceptions"] = "Caveats"
	}
	return kv
}

//DisplacementWorkbook has Afghanistan 2008-2018, a Tanzania row without values and an unknown AB9 row
func DisplacementWorkbook(t *testing.T, dir string) string {
	rows := [][]any{
		{"ISO3", "Name", "Year", "Conflict Stock Displacement", "Conflict New Displacements"},
		{domain.CountryCodeTag, domain.CountryNameTag, domain.YearTag, domain.ConflictStockTag, domain.ConflictNewDispTag},
	}

	for year := 2008; year <= 2018; year++ {
		rows = append(rows, []any{"AFG", "Afghanistan", year, 200000 + (year-2008)*100000, 1000 * (year - 2007)})
	}

	rows = append(rows,
		[]any{"TZA", "Tanzania", 2005, "", ""},
		[]any{"AB9", "Abyei Area", 2015, 100, 50},
	)

	return writeWorkbook(t, filepath.Join(dir, "displacement_fixture.xlsx"), rows)
}

//DisasterWorkbook has Afghanistan 2008, 2012 and 2018 and Tanzania 2011-2012
func DisasterWorkbook(t *testing.T, dir string) string {
	rows := [][]any{
		{"ISO3", "Name", "Year", "Disaster New Displacements"},
		{domain.CountryCodeTag, domain.CountryNameTag, domain.YearTag, domain.DisasterNewDispTag},
		{"AFG", "Afghanistan", 2008, 5000},
		{"AFG", "Afghanistan", 2012, 7000},
		{"AFG", "Afghanistan", 2018, 9000},
		{"TZA", "Tanzania", 2011, 1000},
		{"TZA", "Tanzania", 2012, 3000},
	}

	return writeWorkbook(t, filepath.Join(dir, "disaster_fixture.xlsx"), rows)
}

//Fetcher serves the fixture workbooks and metadata pages. Country pages that contain
//"Republic" in their url fail the availability check.
func Fetcher(t *testing.T) *fetcher.FetcherMock {
	dir := t.TempDir()
	displacement := DisplacementWorkbook(t, dir)
	disaster := DisasterWorkbook(t, dir)

	return &fetcher.FetcherMock{
		DownloadTabularKeyValueFunc: func(ctx context.Context, url string) (map[string]string, error) {
			switch url {
			case DisplacementMetadataURL:
				return Metadata(DisplacementTitle, true), nil
			case DisasterMetadataURL:
				return Metadata(DisasterTitle, true), nil
			}
			return nil, fmt.Errorf("%w: unknown url %s", fetcher.ErrDownload, url)
		},
		DownloadFileFunc: func(ctx context.Context, url, folder, filename string) (string, error) {
			switch url {
			case DisplacementURL:
				return displacement, nil
			case DisasterURL:
				return disaster, nil
			}
			return "", fmt.Errorf("%w: unknown url %s", fetcher.ErrDownload, url)
		},
		CheckFunc: func(ctx context.Context, url string) error {
			if strings.Contains(url, "Republic") {
				return fmt.Errorf("%w: no such page", fetcher.ErrDownload)
			}
			return nil
		},
	}
}

func writeWorkbook(t *testing.T, path string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cellName, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	return path
}

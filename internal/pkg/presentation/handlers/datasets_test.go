package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestGetDatasets(t *testing.T) {
	is, r, ts := setupTest(t)
	store := testStore(t)

	r.Get("/datasets", NewRetrieveDatasetsHandler(zerolog.Logger{}, store))
	resp, body := newGetRequest(is, ts, "application/json", "/datasets", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "application/json")

	const expectation string = `{"data":[{"name":"idmc-idp-data-for-afghanistan","title":"Afghanistan - IDPs","groups":[{"name":"afg"}],"dataset_date":"01/01/2008-12/31/2018","resources":["displacement_data"]}]}`
	is.Equal(body, expectation)
}

func TestGetDatasetByName(t *testing.T) {
	is, r, ts := setupTest(t)
	store := testStore(t)

	r.Get("/datasets/{name}", NewRetrieveDatasetByNameHandler(zerolog.Logger{}, store))
	resp, body := newGetRequest(is, ts, "application/json", "/datasets/idmc-idp-data-for-afghanistan", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	out := struct {
		Data struct {
			Name      string            `json:"name"`
			Resources []domain.Resource `json:"resources"`
		} `json:"data"`
	}{}
	is.NoErr(json.Unmarshal([]byte(body), &out))
	is.Equal(out.Data.Name, "idmc-idp-data-for-afghanistan")
	is.Equal(len(out.Data.Resources), 1) // resources should be included in the dataset
	is.Equal(out.Data.Resources[0].DatasetPreviewEnabled, "True")
}

func TestGetUnknownDatasetReturnsNotFound(t *testing.T) {
	is, r, ts := setupTest(t)

	r.Get("/datasets/{name}", NewRetrieveDatasetByNameHandler(zerolog.Logger{}, testStore(t)))
	resp, _ := newGetRequest(is, ts, "application/json", "/datasets/nope", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestGetResourceAsCSV(t *testing.T) {
	is, r, ts := setupTest(t)

	r.Get("/datasets/{name}/resources/{resource}", NewRetrieveResourceHandler(zerolog.Logger{}, testStore(t)))
	resp, body := newGetRequest(is, ts, "text/csv", "/datasets/idmc-idp-data-for-afghanistan/resources/displacement_data", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "text/csv")
	is.Equal(body, "ISO3,Year\n#country+code,#date+year\nAFG,2008\n")

	resp, _ = newGetRequest(is, ts, "text/csv", "/datasets/idmc-idp-data-for-afghanistan/resources/disaster_data", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestGetResourceView(t *testing.T) {
	is, r, ts := setupTest(t)
	store := testStore(t)
	ds, _ := store.Dataset("idmc-idp-data-for-afghanistan")

	r.Get("/views/{resourceID}", NewRetrieveResourceViewHandler(zerolog.Logger{}, store))
	resp, body := newGetRequest(is, ts, "application/json", "/views/"+ds.Resources[0].ID, nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	out := struct {
		Data domain.ResourceView `json:"data"`
	}{}
	is.NoErr(json.Unmarshal([]byte(body), &out))
	is.Equal(out.Data.ViewType, "hdx_hxl_preview")
	is.Equal(out.Data.HXLPreviewConfig, `{"configVersion":5,"bites":[],"cookbookName":"generic"}`)
}

func testStore(t *testing.T) *catalog.Memory {
	ctx := context.Background()
	store := catalog.NewMemory()

	path := filepath.Join(t.TempDir(), "displacement_data.csv")
	if err := os.WriteFile(path, []byte("ISO3,Year\n#country+code,#date+year\nAFG,2008\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ds := domain.NewDataset("idmc-idp-data-for-afghanistan", "Afghanistan - IDPs", domain.Publisher{}, "afg")
	ds.DatasetDate = "01/01/2008-12/31/2018"

	res := domain.NewResource("displacement_data", "IDPs for Afghanistan", true)
	res.FilePath = path
	ds.AddResource(res)

	if err := store.CreateOrUpdateDataset(ctx, ds); err != nil {
		t.Fatal(err)
	}

	view := &domain.ResourceView{
		ResourceID:       ds.Resources[0].ID,
		Title:            "Quick Charts",
		ViewType:         "hdx_hxl_preview",
		HXLPreviewConfig: `{"configVersion":5,"bites":[],"cookbookName":"generic"}`,
	}
	if err := store.CreateOrUpdateResourceView(ctx, view); err != nil {
		t.Fatal(err)
	}

	return store
}

func newGetRequest(is *is.I, ts *httptest.Server, accept, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, body)
	is.NoErr(err)

	req.Header.Add("Accept", accept)

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err) // failed to read response body

	return resp, string(respBody)
}

func setupTest(t *testing.T) (*is.I, *chi.Mux, *httptest.Server) {
	is := is.New(t)
	r := chi.NewRouter()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return is, r, ts
}

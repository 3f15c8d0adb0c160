package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idmc-opendata/catalog")

var ErrNotFound = errors.New("not found")

//Client persists datasets, showcases and views in the data catalog. Resource ids
//assigned by the catalog are written back into the dataset.
//
//go:generate moq -rm -out catalog_mock.go . Client
type Client interface {
	CreateOrUpdateDataset(ctx context.Context, dataset *domain.Dataset) error
	CreateOrUpdateShowcase(ctx context.Context, showcase *domain.Showcase, datasetName string) error
	CreateOrUpdateResourceView(ctx context.Context, view *domain.ResourceView) error
}

//NewClient talks to the CKAN action API below baseURL
func NewClient(baseURL, apiKey string) Client {
	return &ckan{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type ckan struct {
	baseURL    string
	apiKey     string
	httpClient http.Client
}

type packageDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Resources []resourceDTO `json:"resources"`
}

type resourceDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type viewDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type actionResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"__type"`
	} `json:"error"`
}

func (c *ckan) CreateOrUpdateDataset(ctx context.Context, dataset *domain.Dataset) error {
	var err error
	ctx, span := tracer.Start(ctx, "create-or-update-dataset")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	existing := packageDTO{}
	err = c.action(ctx, "package_show", map[string]string{"id": dataset.Name}, &existing)

	stored := packageDTO{}

	if errors.Is(err, ErrNotFound) {
		log.Info().Msgf("creating dataset %s", dataset.Name)
		err = c.action(ctx, "package_create", dataset, &stored)
	} else if err == nil {
		log.Info().Msgf("updating dataset %s", dataset.Name)
		dataset.ID = existing.ID
		err = c.action(ctx, "package_update", dataset, &stored)
	}

	if err != nil {
		err = fmt.Errorf("failed to store dataset %s: %w", dataset.Name, err)
		return err
	}

	dataset.ID = stored.ID

	known := map[string]string{}
	for _, r := range existing.Resources {
		known[r.Name] = r.ID
	}

	for i := range dataset.Resources {
		r := &dataset.Resources[i]
		r.PackageID = stored.ID

		action := "resource_create"
		if id, ok := known[r.Name]; ok {
			action = "resource_update"
			r.ID = id
		}

		uploaded := resourceDTO{}
		if err = c.upload(ctx, action, *r, &uploaded); err != nil {
			err = fmt.Errorf("failed to upload resource %s of %s: %w", r.Name, dataset.Name, err)
			return err
		}

		r.ID = uploaded.ID
		r.URL = uploaded.URL
	}

	return nil
}

func (c *ckan) CreateOrUpdateShowcase(ctx context.Context, showcase *domain.Showcase, datasetName string) error {
	var err error
	ctx, span := tracer.Start(ctx, "create-or-update-showcase")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	existing := packageDTO{}
	err = c.action(ctx, "ckanext_showcase_show", map[string]string{"id": showcase.Name}, &existing)

	stored := packageDTO{}

	if errors.Is(err, ErrNotFound) {
		err = c.action(ctx, "ckanext_showcase_create", showcase, &stored)
	} else if err == nil {
		showcase.ID = existing.ID
		err = c.action(ctx, "ckanext_showcase_update", showcase, &stored)
	}

	if err != nil {
		err = fmt.Errorf("failed to store showcase %s: %w", showcase.Name, err)
		return err
	}

	showcase.ID = stored.ID

	associated := []packageDTO{}
	err = c.action(ctx, "ckanext_showcase_package_list", map[string]string{"showcase_id": stored.ID}, &associated)
	if err != nil && !errors.Is(err, ErrNotFound) {
		err = fmt.Errorf("failed to list datasets of showcase %s: %w", showcase.Name, err)
		return err
	}

	for _, p := range associated {
		if p.Name == datasetName || p.ID == datasetName {
			err = nil
			return nil
		}
	}

	association := map[string]string{"package_id": datasetName, "showcase_id": stored.ID}
	if err = c.action(ctx, "ckanext_showcase_package_association_create", association, nil); err != nil {
		err = fmt.Errorf("failed to associate showcase %s with %s: %w", showcase.Name, datasetName, err)
		return err
	}

	return nil
}

//CreateOrUpdateResourceView replaces the view of the resource that has the same title, or creates
//a new one if there is none
func (c *ckan) CreateOrUpdateResourceView(ctx context.Context, view *domain.ResourceView) error {
	var err error
	ctx, span := tracer.Start(ctx, "create-or-update-resource-view")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	existing := []viewDTO{}
	err = c.action(ctx, "resource_view_list", map[string]string{"id": view.ResourceID}, &existing)
	if err != nil && !errors.Is(err, ErrNotFound) {
		err = fmt.Errorf("failed to list views of resource %s: %w", view.ResourceID, err)
		return err
	}

	for _, v := range existing {
		if v.Title != view.Title {
			continue
		}

		update := struct {
			ID string `json:"id"`
			*domain.ResourceView
		}{ID: v.ID, ResourceView: view}

		if err = c.action(ctx, "resource_view_update", update, nil); err != nil {
			err = fmt.Errorf("failed to update view %s of resource %s: %w", v.ID, view.ResourceID, err)
		}
		return err
	}

	if err = c.action(ctx, "resource_view_create", view, nil); err != nil {
		err = fmt.Errorf("failed to create view for resource %s: %w", view.ResourceID, err)
	}

	return err
}

func (c *ckan) action(ctx context.Context, name string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.actionURL(name), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	return c.do(ctx, req, result)
}

func (c *ckan) upload(ctx context.Context, name string, r domain.Resource, result any) error {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"id":                      r.ID,
		"package_id":              r.PackageID,
		"name":                    r.Name,
		"description":             r.Description,
		"format":                  r.Format,
		"resource_type":           r.ResourceType,
		"url_type":                r.URLType,
		"dataset_preview_enabled": r.DatasetPreviewEnabled,
	}

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	file, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.FilePath, err)
	}
	defer file.Close()

	part, err := w.CreateFormFile("upload", filepath.Base(r.FilePath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err = io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy %s into request: %w", r.FilePath, err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.actionURL(name), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Content-Type", w.FormDataContentType())

	return c.do(ctx, req, result)
}

func (c *ckan) do(ctx context.Context, req *http.Request, result any) error {
	log := logging.GetFromContext(ctx)

	req.Header.Add("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Add("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log.Error().Str("request", string(reqbytes)).Str("response", string(respbytes)).Msg("request failed")
		return fmt.Errorf("catalog returned status code %d (body: %s)", resp.StatusCode, string(respBody))
	}

	ar := actionResponse{}
	if err = json.Unmarshal(respBody, &ar); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !ar.Success {
		if ar.Error != nil && ar.Error.Type == "Not Found Error" {
			return ErrNotFound
		}
		if ar.Error != nil {
			return fmt.Errorf("catalog action failed: %s", ar.Error.Message)
		}
		return errors.New("catalog action failed")
	}

	if result == nil || len(ar.Result) == 0 {
		return nil
	}

	if err = json.Unmarshal(ar.Result, result); err != nil {
		return fmt.Errorf("failed to unmarshal action result: %w", err)
	}

	return nil
}

func (c *ckan) actionURL(name string) string {
	return fmt.Sprintf("%s/api/3/action/%s", c.baseURL, name)
}

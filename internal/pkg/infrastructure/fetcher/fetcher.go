package fetcher

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jszwec/csvutil"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idmc-opendata/fetcher")

var ErrDownload = errors.New("download failed")

//go:generate moq -rm -out fetcher_mock.go . Fetcher
type Fetcher interface {
	DownloadTabularKeyValue(ctx context.Context, url string) (map[string]string, error)
	DownloadFile(ctx context.Context, url, folder, filename string) (string, error)
	Check(ctx context.Context, url string) error
}

func New() Fetcher {
	return &httpFetcher{
		client: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type httpFetcher struct {
	client http.Client
}

type keyValue struct {
	Key   string `csv:"key"`
	Value string `csv:"value"`
}

func (f *httpFetcher) DownloadTabularKeyValue(ctx context.Context, url string) (map[string]string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "download-key-value")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	dec, err := csvutil.NewDecoder(newPairReader(body), "key", "value")
	if err != nil {
		err = fmt.Errorf("%w: failed to read key/value page %s: %s", ErrDownload, url, err.Error())
		return nil, err
	}

	result := map[string]string{}

	for {
		kv := keyValue{}
		if err = dec.Decode(&kv); err == io.EOF {
			err = nil
			break
		} else if err != nil {
			err = fmt.Errorf("%w: failed to decode key/value page %s: %s", ErrDownload, url, err.Error())
			return nil, err
		}

		key := strings.TrimSpace(kv.Key)
		if key == "" {
			continue
		}

		if _, exists := result[key]; !exists {
			result[key] = strings.TrimSpace(kv.Value)
		}
	}

	return result, nil
}

//pairReader reads the first two columns of every record, whatever the number of fields
type pairReader struct {
	r *csv.Reader
}

func newPairReader(body io.Reader) *pairReader {
	r := csv.NewReader(body)
	r.FieldsPerRecord = -1
	return &pairReader{r: r}
}

func (p *pairReader) Read() ([]string, error) {
	record, err := p.r.Read()
	if err != nil {
		return nil, err
	}

	pair := []string{"", ""}
	copy(pair, record)

	return pair, nil
}

func (f *httpFetcher) DownloadFile(ctx context.Context, url, folder, filename string) (string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "download-file")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	body, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err = os.MkdirAll(folder, 0755); err != nil {
		err = fmt.Errorf("failed to create folder %s: %w", folder, err)
		return "", err
	}

	path := filepath.Join(folder, filename)

	file, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("failed to create file %s: %w", path, err)
		return "", err
	}

	written, err := io.Copy(file, body)
	if err != nil {
		file.Close()
		err = fmt.Errorf("%w: failed to write %s: %s", ErrDownload, path, err.Error())
		return "", err
	}

	if err = file.Close(); err != nil {
		err = fmt.Errorf("failed to close %s: %w", path, err)
		return "", err
	}

	log.Info().Msgf("downloaded %d bytes from %s into %s", written, url, path)

	return path, nil
}

func (f *httpFetcher) Check(ctx context.Context, url string) error {
	var err error
	ctx, span := tracer.Start(ctx, "check-url")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		err = fmt.Errorf("%w: failed to create request: %s", ErrDownload, err.Error())
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: failed to send request: %s", ErrDownload, err.Error())
		return err
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("%w: %s returned status code %d", ErrDownload, url, resp.StatusCode)
		return err
	}

	return nil
}

func (f *httpFetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	log := logging.GetFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %s", ErrDownload, err.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %s", ErrDownload, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)
		log.Error().Str("request", string(reqbytes)).Str("response", string(respbytes)).Msg("request failed")

		return nil, fmt.Errorf("%w: %s returned status code %d", ErrDownload, url, resp.StatusCode)
	}

	return resp.Body, nil
}

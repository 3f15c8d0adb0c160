package quickcharts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
)

const (
	ViewTitle     string = "Quick Charts"
	ViewType      string = "hdx_hxl_preview"
	ConfigVersion int    = 5
	CookbookName  string = "generic"
)

var ErrNoResource = errors.New("dataset has no resource with an id to attach the view to")

//biteTemplate describes one time series chart. The hash codes are fingerprints assigned
//by the quick charts tool and must not change.
type biteTemplate struct {
	column   string
	title    string
	hashCode int32
}

//templates follow the order of domain.TrackedMetrics
var templates = []biteTemplate{
	{column: domain.ConflictStockTag, title: "Conflict Stock Displacement", hashCode: 20811871},
	{column: domain.ConflictNewDispTag, title: "Conflict New Displacements", hashCode: -1843090317},
	{column: domain.DisasterNewDispTag, title: "Disaster New Displacements", hashCode: 1805077698},
}

//BuildResourceView creates the quick charts view for the first resource of a dataset.
//A nil emptyCols is the legacy call and gets all bites, serialized without whitespace.
//A non nil emptyCols drops the bites of empty columns and is serialized with a space after every separator.
func BuildResourceView(dataset *domain.Dataset, emptyCols domain.EmptyColumns) (*domain.ResourceView, error) {
	if dataset == nil || len(dataset.Resources) == 0 || dataset.Resources[0].ID == "" {
		return nil, ErrNoResource
	}

	cfg := hxlPreviewConfig{
		ConfigVersion: ConfigVersion,
		Bites:         []bite{},
		CookbookName:  CookbookName,
	}

	for i, t := range templates {
		if emptyCols.IsEmpty(i) {
			continue
		}
		cfg.Bites = append(cfg.Bites, newBite(t))
	}

	compact, err := marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quick charts config: %w", err)
	}

	serialized := compact
	if emptyCols != nil {
		serialized = spaced(compact)
	}

	return &domain.ResourceView{
		ResourceID:       dataset.Resources[0].ID,
		Description:      "",
		Title:            ViewTitle,
		ViewType:         ViewType,
		HXLPreviewConfig: string(serialized),
	}, nil
}

func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

//spaced inserts a single space after every ',' and ':' that is not part of a string
func spaced(compact []byte) []byte {
	result := make([]byte, 0, len(compact)+len(compact)/8)
	inString := false
	escaped := false

	for _, c := range compact {
		result = append(result, c)

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',', ':':
			result = append(result, ' ')
		}
	}

	return result
}

func newBite(t biteTemplate) bite {
	return bite{
		TempShowSaveCancelButtons: false,
		Ingredient: ingredient{
			ValueColumn:       t.column,
			AggregateFunction: "sum",
			DateColumn:        domain.YearTag,
			Filters:           struct{}{},
			Description:       "",
		},
		Type: "timeseries",
		ComputedProperties: computedProperties{
			ExplainedFiltersMap: map[string]filterSet{
				"remove empty valued rows": {
					FilterWith:    []map[string]string{{t.column: "is not empty"}},
					FilterWithout: []map[string]string{},
				},
			},
			PieChart:  false,
			Title:     fmt.Sprintf("Sum of %s by Year", t.title),
			DataTitle: t.title,
		},
		UIProperties: uiProperties{
			SwapAxis:             true,
			ShowGrid:             true,
			Color:                "#0077ce",
			SortingByValue1:      "DESC",
			ShowPoints:           true,
			InternalColorPattern: []string{"#1ebfb3", "#0077ce", "#f2645a", "#9C27B0"},
			Title:                fmt.Sprintf("%s each Year", t.title),
		},
		DataProperties:  struct{}{},
		DisplayCategory: "Timeseries",
		HashCode:        t.hashCode,
	}
}

type hxlPreviewConfig struct {
	ConfigVersion int    `json:"configVersion"`
	Bites         []bite `json:"bites"`
	CookbookName  string `json:"cookbookName"`
}

type bite struct {
	TempShowSaveCancelButtons bool               `json:"tempShowSaveCancelButtons"`
	Ingredient                ingredient         `json:"ingredient"`
	Type                      string             `json:"type"`
	ErrorMsg                  *string            `json:"errorMsg"`
	ComputedProperties        computedProperties `json:"computedProperties"`
	UIProperties              uiProperties       `json:"uiProperties"`
	DataProperties            struct{}           `json:"dataProperties"`
	DisplayCategory           string             `json:"displayCategory"`
	HashCode                  int32              `json:"hashCode"`
}

type ingredient struct {
	AggregateColumn       *string  `json:"aggregateColumn"`
	ValueColumn           string   `json:"valueColumn"`
	AggregateFunction     string   `json:"aggregateFunction"`
	DateColumn            string   `json:"dateColumn"`
	ComparisonValueColumn *string  `json:"comparisonValueColumn"`
	ComparisonOperator    *string  `json:"comparisonOperator"`
	Filters               struct{} `json:"filters"`
	Description           string   `json:"description"`
}

type computedProperties struct {
	ExplainedFiltersMap map[string]filterSet `json:"explainedFiltersMap"`
	PieChart            bool                 `json:"pieChart"`
	Title               string               `json:"title"`
	DataTitle           string               `json:"dataTitle"`
}

type filterSet struct {
	FilterWith    []map[string]string `json:"filterWith"`
	FilterWithout []map[string]string `json:"filterWithout"`
}

type uiProperties struct {
	SwapAxis             bool     `json:"swapAxis"`
	ShowGrid             bool     `json:"showGrid"`
	Color                string   `json:"color"`
	SortingByValue1      string   `json:"sortingByValue1"`
	SortingByCategory1   *string  `json:"sortingByCategory1"`
	ShowPoints           bool     `json:"showPoints"`
	InternalColorPattern []string `json:"internalColorPattern"`
	Title                string   `json:"title"`
}

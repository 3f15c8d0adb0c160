package quickcharts

import (
	"encoding/json"
	"testing"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/matryer/is"
)

func TestLegacyResourceView(t *testing.T) {
	is := is.New(t)

	view, err := BuildResourceView(testDataset("123"), nil)
	is.NoErr(err)

	is.Equal(view.ResourceID, "123")
	is.Equal(view.Description, "")
	is.Equal(view.Title, "Quick Charts")
	is.Equal(view.ViewType, "hdx_hxl_preview")
	is.Equal(view.HXLPreviewConfig, compactConfig) // legacy records are serialized without whitespace
}

func TestResourceViewWithEmptyColumns(t *testing.T) {
	is := is.New(t)

	view, err := BuildResourceView(testDataset("123"), domain.EmptyColumns{false, false, true})
	is.NoErr(err)

	is.Equal(view.HXLPreviewConfig, spacedConfig) // the disaster bite should be omitted
}

func TestResourceViewWithoutEmptyColumnsIsSemanticallyEqual(t *testing.T) {
	is := is.New(t)

	legacy, err := BuildResourceView(testDataset("123"), nil)
	is.NoErr(err)
	explicit, err := BuildResourceView(testDataset("123"), domain.EmptyColumns{false, false, false})
	is.NoErr(err)

	is.True(legacy.HXLPreviewConfig != explicit.HXLPreviewConfig) // the two forms differ byte wise

	var a, b map[string]any
	is.NoErr(json.Unmarshal([]byte(legacy.HXLPreviewConfig), &a))
	is.NoErr(json.Unmarshal([]byte(explicit.HXLPreviewConfig), &b))
	is.Equal(a, b)
}

func TestResourceViewOmitsEveryEmptyColumn(t *testing.T) {
	is := is.New(t)

	view, err := BuildResourceView(testDataset("123"), domain.EmptyColumns{true, true, false})
	is.NoErr(err)

	cfg := struct {
		Bites []struct {
			HashCode int32 `json:"hashCode"`
		} `json:"bites"`
	}{}
	is.NoErr(json.Unmarshal([]byte(view.HXLPreviewConfig), &cfg))

	is.Equal(len(cfg.Bites), 1)
	is.Equal(cfg.Bites[0].HashCode, int32(1805077698))
}

func TestResourceViewRequiresResourceID(t *testing.T) {
	is := is.New(t)

	_, err := BuildResourceView(testDataset(""), nil)
	is.Equal(err, ErrNoResource)

	_, err = BuildResourceView(&domain.Dataset{}, nil)
	is.Equal(err, ErrNoResource)
}

func TestSpacedLeavesStringsAlone(t *testing.T) {
	is := is.New(t)
	is.Equal(string(spaced([]byte(`{"a:b":"c,\"d","e":[1,2]}`))), `{"a:b": "c,\"d", "e": [1, 2]}`)
}

func testDataset(resourceID string) *domain.Dataset {
	ds := &domain.Dataset{Name: "idmc-idp-data-for-afghanistan"}

	first := domain.NewResource("displacement_data", "Internally displaced persons - IDPs for Afghanistan", true)
	first.ID = resourceID
	first.URL = "http://sasa/file1.csv"
	ds.AddResource(first)

	second := domain.NewResource("disaster_data", "Internally displaced persons - IDPs (new displacement associated with disasters) for Afghanistan", false)
	second.URL = "http://sasa/file2.csv"
	ds.AddResource(second)

	return ds
}

const compactConfig string = `{"configVersion":5,"bites":[{"tempShowSaveCancelButtons":false,"ingredient":{"aggregateColumn":null,"valueColumn":"#affected+idps+ind+stock+conflict","aggregateFunction":"sum","dateColumn":"#date+year","comparisonValueColumn":null,"comparisonOperator":null,"filters":{},"description":""},"type":"timeseries","errorMsg":null,"computedProperties":{"explainedFiltersMap":{"remove empty valued rows":{"filterWith":[{"#affected+idps+ind+stock+conflict":"is not empty"}],"filterWithout":[]}},"pieChart":false,"title":"Sum of Conflict Stock Displacement by Year","dataTitle":"Conflict Stock Displacement"},"uiProperties":{"swapAxis":true,"showGrid":true,"color":"#0077ce","sortingByValue1":"DESC","sortingByCategory1":null,"showPoints":true,"internalColorPattern":["#1ebfb3","#0077ce","#f2645a","#9C27B0"],"title":"Conflict Stock Displacement each Year"},"dataProperties":{},"displayCategory":"Timeseries","hashCode":20811871},{"tempShowSaveCancelButtons":false,"ingredient":{"aggregateColumn":null,"valueColumn":"#affected+idps+ind+newdisp+conflict","aggregateFunction":"sum","dateColumn":"#date+year","comparisonValueColumn":null,"comparisonOperator":null,"filters":{},"description":""},"type":"timeseries","errorMsg":null,"computedProperties":{"explainedFiltersMap":{"remove empty valued rows":{"filterWith":[{"#affected+idps+ind+newdisp+conflict":"is not empty"}],"filterWithout":[]}},"pieChart":false,"title":"Sum of Conflict New Displacements by Year","dataTitle":"Conflict New Displacements"},"uiProperties":{"swapAxis":true,"showGrid":true,"color":"#0077ce","sortingByValue1":"DESC","sortingByCategory1":null,"showPoints":true,"internalColorPattern":["#1ebfb3","#0077ce","#f2645a","#9C27B0"],"title":"Conflict New Displacements each Year"},"dataProperties":{},"displayCategory":"Timeseries","hashCode":-1843090317},{"tempShowSaveCancelButtons":false,"ingredient":{"aggregateColumn":null,"valueColumn":"#affected+idps+ind+newdisp+disaster","aggregateFunction":"sum","dateColumn":"#date+year","comparisonValueColumn":null,"comparisonOperator":null,"filters":{},"description":""},"type":"timeseries","errorMsg":null,"computedProperties":{"explainedFiltersMap":{"remove empty valued rows":{"filterWith":[{"#affected+idps+ind+newdisp+disaster":"is not empty"}],"filterWithout":[]}},"pieChart":false,"title":"Sum of Disaster New Displacements by Year","dataTitle":"Disaster New Displacements"},"uiProperties":{"swapAxis":true,"showGrid":true,"color":"#0077ce","sortingByValue1":"DESC","sortingByCategory1":null,"showPoints":true,"internalColorPattern":["#1ebfb3","#0077ce","#f2645a","#9C27B0"],"title":"Disaster New Displacements each Year"},"dataProperties":{},"displayCategory":"Timeseries","hashCode":1805077698}],"cookbookName":"generic"}`

const spacedConfig string = `{"configVersion": 5, "bites": [{"tempShowSaveCancelButtons": false, "ingredient": {"aggregateColumn": null, "valueColumn": "#affected+idps+ind+stock+conflict", "aggregateFunction": "sum", "dateColumn": "#date+year", "comparisonValueColumn": null, "comparisonOperator": null, "filters": {}, "description": ""}, "type": "timeseries", "errorMsg": null, "computedProperties": {"explainedFiltersMap": {"remove empty valued rows": {"filterWith": [{"#affected+idps+ind+stock+conflict": "is not empty"}], "filterWithout": []}}, "pieChart": false, "title": "Sum of Conflict Stock Displacement by Year", "dataTitle": "Conflict Stock Displacement"}, "uiProperties": {"swapAxis": true, "showGrid": true, "color": "#0077ce", "sortingByValue1": "DESC", "sortingByCategory1": null, "showPoints": true, "internalColorPattern": ["#1ebfb3", "#0077ce", "#f2645a", "#9C27B0"], "title": "Conflict Stock Displacement each Year"}, "dataProperties": {}, "displayCategory": "Timeseries", "hashCode": 20811871}, {"tempShowSaveCancelButtons": false, "ingredient": {"aggregateColumn": null, "valueColumn": "#affected+idps+ind+newdisp+conflict", "aggregateFunction": "sum", "dateColumn": "#date+year", "comparisonValueColumn": null, "comparisonOperator": null, "filters": {}, "description": ""}, "type": "timeseries", "errorMsg": null, "computedProperties": {"explainedFiltersMap": {"remove empty valued rows": {"filterWith": [{"#affected+idps+ind+newdisp+conflict": "is not empty"}], "filterWithout": []}}, "pieChart": false, "title": "Sum of Conflict New Displacements by Year", "dataTitle": "Conflict New Displacements"}, "uiProperties": {"swapAxis": true, "showGrid": true, "color": "#0077ce", "sortingByValue1": "DESC", "sortingByCategory1": null, "showPoints": true, "internalColorPattern": ["#1ebfb3", "#0077ce", "#f2645a", "#9C27B0"], "title": "Conflict New Displacements each Year"}, "dataProperties": {}, "displayCategory": "Timeseries", "hashCode": -1843090317}], "cookbookName": "generic"}`

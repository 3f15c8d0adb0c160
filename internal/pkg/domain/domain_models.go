package domain

import "fmt"

const (
	CountryCodeTag string = "#country+code"
	CountryNameTag string = "#country+name"
	YearTag        string = "#date+year"

	ConflictStockTag   string = "#affected+idps+ind+stock+conflict"
	ConflictNewDispTag string = "#affected+idps+ind+newdisp+conflict"
	DisasterNewDispTag string = "#affected+idps+ind+newdisp+disaster"
)

//TrackedMetrics is the fixed column order shared by EmptyColumns and the quick chart bites
var TrackedMetrics = []string{ConflictStockTag, ConflictNewDispTag, DisasterNewDispTag}

//Row is one yearly observation for a country. A nil value means the cell was blank or malformed.
type Row struct {
	CountryCode string
	CountryName string
	Year        int
	Values      map[string]*float64
}

func (r Row) Value(tag string) (float64, bool) {
	v, ok := r.Values[tag]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

func (r Row) HasValues() bool {
	for _, v := range r.Values {
		if v != nil {
			return true
		}
	}
	return false
}

//Headers are the column titles and HXL hashtags from the first two rows of a workbook
type Headers struct {
	Titles []string
	Tags   []string
}

//IndicatorMetadata is read from the key/value metadata page of an indicator
type IndicatorMetadata struct {
	Name        string
	Description string
	Methodology string
	Caveats     string
}

func NewIndicatorMetadata(kv map[string]string) IndicatorMetadata {
	return IndicatorMetadata{
		Name:        kv["Indicator Name"],
		Description: kv["Long definition"],
		Methodology: kv["Statistical concept and methodology"],
		Caveats:     kv["Limitations and exceptions"],
	}
}

//Indicator is a successfully processed indicator workbook
type Indicator struct {
	Key      string
	Headers  Headers
	Metadata IndicatorMetadata
}

type DateRange struct {
	From int
	To   int
}

func (d DateRange) String() string {
	return fmt.Sprintf("01/01/%d-12/31/%d", d.From, d.To)
}

func (d DateRange) Contains(other DateRange) bool {
	return d.From <= other.From && other.To <= d.To
}

//YearRange returns the span of years among rows that carry at least one metric value
func YearRange(rows ...[]Row) (DateRange, bool) {
	dr := DateRange{}
	found := false

	for _, rs := range rows {
		for _, r := range rs {
			if r.Year <= 0 || !r.HasValues() {
				continue
			}

			if !found {
				dr.From, dr.To = r.Year, r.Year
				found = true
				continue
			}

			if r.Year < dr.From {
				dr.From = r.Year
			}
			if r.Year > dr.To {
				dr.To = r.Year
			}
		}
	}

	return dr, found
}

//EmptyColumns has one flag per entry in TrackedMetrics, true when no row has a value for it
type EmptyColumns []bool

func NewEmptyColumns(rows ...[]Row) EmptyColumns {
	empty := make(EmptyColumns, len(TrackedMetrics))

	for i, tag := range TrackedMetrics {
		empty[i] = true
		for _, rs := range rows {
			for _, r := range rs {
				if _, ok := r.Value(tag); ok {
					empty[i] = false
					break
				}
			}
			if !empty[i] {
				break
			}
		}
	}

	return empty
}

func (e EmptyColumns) IsEmpty(index int) bool {
	return index < len(e) && e[index]
}

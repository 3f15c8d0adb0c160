package workbook

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/xuri/excelize/v2"
)

//Read parses the first sheet of an IDMC workbook. The first row holds column titles and the
//second row HXL hashtags, every following row is an observation.
func Read(path string) (domain.Headers, []domain.Row, error) {
	headers := domain.Headers{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return headers, nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return headers, nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return headers, nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	if len(cells) < 2 {
		return headers, nil, fmt.Errorf("workbook %s lacks title and hashtag rows", path)
	}

	headers.Titles = trimAll(cells[0])
	headers.Tags = trimAll(cells[1])

	for len(headers.Titles) < len(headers.Tags) {
		headers.Titles = append(headers.Titles, "")
	}
	for len(headers.Tags) < len(headers.Titles) {
		headers.Tags = append(headers.Tags, "")
	}

	columns := map[string]int{}
	for i, tag := range headers.Tags {
		if tag != "" {
			columns[tag] = i
		}
	}

	for _, required := range []string{domain.CountryCodeTag, domain.YearTag} {
		if _, ok := columns[required]; !ok {
			return headers, nil, fmt.Errorf("workbook %s has no %s column", path, required)
		}
	}

	rows := make([]domain.Row, 0, len(cells)-2)

	for _, record := range cells[2:] {
		code := strings.ToUpper(cell(record, columns[domain.CountryCodeTag]))
		if code == "" {
			continue
		}

		row := domain.Row{
			CountryCode: code,
			Year:        parseYear(cell(record, columns[domain.YearTag])),
			Values:      map[string]*float64{},
		}

		if idx, ok := columns[domain.CountryNameTag]; ok {
			row.CountryName = cell(record, idx)
		}

		for tag, idx := range columns {
			if isKeyColumn(tag) {
				continue
			}
			row.Values[tag] = parseNumber(cell(record, idx))
		}

		rows = append(rows, row)
	}

	return headers, rows, nil
}

//WriteCSV writes headers, hashtags and rows to path, replacing any previous file
func WriteCSV(path string, headers domain.Headers, rows []domain.Row) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)

	if err = w.Write(headers.Titles); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err = w.Write(headers.Tags); err != nil {
		return fmt.Errorf("failed to write hashtags: %w", err)
	}

	for _, r := range rows {
		record := make([]string, len(headers.Tags))
		for i, tag := range headers.Tags {
			record[i] = format(r, tag)
		}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func format(r domain.Row, tag string) string {
	switch tag {
	case domain.CountryCodeTag:
		return r.CountryCode
	case domain.CountryNameTag:
		return r.CountryName
	case domain.YearTag:
		if r.Year <= 0 {
			return ""
		}
		return strconv.Itoa(r.Year)
	}

	v, ok := r.Value(tag)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isKeyColumn(tag string) bool {
	return tag == domain.CountryCodeTag || tag == domain.CountryNameTag || tag == domain.YearTag
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func trimAll(values []string) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.TrimSpace(v)
	}
	return result
}

func parseNumber(value string) *float64 {
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return &f
}

func parseYear(value string) int {
	f := parseNumber(value)
	if f == nil || *f != math.Trunc(*f) || *f <= 0 {
		return 0
	}
	return int(*f)
}

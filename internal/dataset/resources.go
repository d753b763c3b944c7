package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// The resource views mirror the dataset's own column names in their output,
// so rows are rendered as JSON objects with keys in column order rather than
// through a map (which would lose the order).

// SchemaJSON renders data://schema: column name to declared type, in column
// order, indented.
func (l *Loader) SchemaJSON() (string, error) {
	ds, err := l.Load()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, col := range ds.Columns {
		key, err := json.Marshal(col)
		if err != nil {
			return "", fmt.Errorf("failed to encode schema: %w", err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		val, _ := json.Marshal(ds.Types[i])
		buf.Write(val)
		if i < len(ds.Columns)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// CountriesJSON renders data://countries: the distinct (code, name) pairs in
// the dataset sorted ascending by code. An empty dataset yields an error
// object, not an empty list, so callers can branch on the "error" key.
func (l *Loader) CountriesJSON() (string, error) {
	ds, err := l.Load()
	if err != nil {
		return "", err
	}

	pairs := ds.Countries()
	if len(pairs) == 0 {
		return errorJSON("No countries found")
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		code, err := json.Marshal(p.Code)
		if err != nil {
			return "", fmt.Errorf("failed to encode countries: %w", err)
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return "", fmt.Errorf("failed to encode countries: %w", err)
		}
		buf.WriteString(`{"` + ColumnCountryCode + `":`)
		buf.Write(code)
		buf.WriteString(`,"` + ColumnCountryName + `":`)
		buf.Write(name)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// CountryIndicatorsJSON renders data://indicators/{country_code}: every row
// whose country code equals the input exactly (case-sensitive, no
// normalization). No matches yields a "Country not found" error object.
func (l *Loader) CountryIndicatorsJSON(countryCode string) (string, error) {
	ds, err := l.Load()
	if err != nil {
		return "", err
	}

	matched := ds.FilterByCountry(countryCode)
	if len(matched) == 0 {
		return errorJSON("Country not found: " + countryCode)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range matched {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRow(&buf, ds.Columns, row); err != nil {
			return "", fmt.Errorf("failed to encode indicators: %w", err)
		}
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// Countries returns the distinct (code, name) pairs sorted ascending by code.
func (d *Dataset) Countries() []CountryPair {
	codeIdx := d.ColumnIndex(ColumnCountryCode)
	nameIdx := d.ColumnIndex(ColumnCountryName)
	if codeIdx < 0 || nameIdx < 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(d.Rows))
	pairs := make([]CountryPair, 0, len(d.Rows))
	for _, row := range d.Rows {
		code, name := row[codeIdx], row[nameIdx]
		key := fmt.Sprintf("%v\x00%v", code, name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, CountryPair{Code: code, Name: name})
	}

	sort.Slice(pairs, func(i, j int) bool {
		ci := fmt.Sprintf("%v", pairs[i].Code)
		cj := fmt.Sprintf("%v", pairs[j].Code)
		if ci != cj {
			return ci < cj
		}
		return fmt.Sprintf("%v", pairs[i].Name) < fmt.Sprintf("%v", pairs[j].Name)
	})
	return pairs
}

// FilterByCountry returns the rows whose country code cell equals code
// exactly. Non-string cells never match.
func (d *Dataset) FilterByCountry(code string) [][]any {
	codeIdx := d.ColumnIndex(ColumnCountryCode)
	if codeIdx < 0 {
		return nil
	}

	var matched [][]any
	for _, row := range d.Rows {
		if cell, ok := row[codeIdx].(string); ok && cell == code {
			matched = append(matched, row)
		}
	}
	return matched
}

// writeRow renders one row as a JSON object with keys in column order.
func writeRow(buf *bytes.Buffer, columns []string, row []any) error {
	buf.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(row[i])
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}

// errorJSON renders a {"error": ...} payload.
func errorJSON(message string) (string, error) {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package dataset

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSchemaJSON(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	out, err := loader.SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON: %v", err)
	}

	var schema map[string]string
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if schema["countryiso3code"] != TypeString {
		t.Errorf("countryiso3code type = %q", schema["countryiso3code"])
	}
	if schema["value"] != TypeInt64 {
		t.Errorf("value type = %q", schema["value"])
	}
	if len(schema) != 6 {
		t.Errorf("schema has %d columns, want 6", len(schema))
	}
	// Keys come out in column order
	if !strings.Contains(out, "\"countryiso3code\": \"String\"") {
		t.Errorf("schema output missing expected entry:\n%s", out)
	}
	if strings.Index(out, `"countryiso3code"`) > strings.Index(out, `"value"`) {
		t.Error("schema keys should follow column order")
	}
}

func TestCountriesJSON(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	out, err := loader.CountriesJSON()
	if err != nil {
		t.Fatalf("CountriesJSON: %v", err)
	}

	var countries []map[string]string
	if err := json.Unmarshal([]byte(out), &countries); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	// Distinct pairs, ascending by code
	want := []map[string]string{
		{"countryiso3code": "BRA", "country": "Brazil"},
		{"countryiso3code": "DEU", "country": "Germany"},
		{"countryiso3code": "USA", "country": "United States"},
	}
	if len(countries) != len(want) {
		t.Fatalf("got %d countries, want %d: %s", len(countries), len(want), out)
	}
	for i, w := range want {
		if countries[i]["countryiso3code"] != w["countryiso3code"] || countries[i]["country"] != w["country"] {
			t.Errorf("countries[%d] = %v, want %v", i, countries[i], w)
		}
	}
}

func TestCountriesJSONEmptyDataset(t *testing.T) {
	loader := NewLoader(writeCSV(t, "countryiso3code,country,value\n"))

	out, err := loader.CountriesJSON()
	if err != nil {
		t.Fatalf("CountriesJSON: %v", err)
	}
	if out != `{"error":"No countries found"}` {
		t.Errorf("output = %s", out)
	}
}

func TestCountryIndicatorsJSON(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	out, err := loader.CountryIndicatorsJSON("USA")
	if err != nil {
		t.Fatalf("CountryIndicatorsJSON: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %s", len(rows), out)
	}
	for i, row := range rows {
		if row["countryiso3code"] != "USA" {
			t.Errorf("row %d code = %v, want USA", i, row["countryiso3code"])
		}
	}
	// Row values pass through unchanged: large int stays an integer literal
	if !strings.Contains(out, `"value":25462700000000`) {
		t.Errorf("output should carry the raw integer value:\n%s", out)
	}
	// Keys mirror column order
	if strings.Index(out, `"countryiso3code"`) > strings.Index(out, `"country"`) {
		t.Error("row keys should follow column order")
	}
}

func TestCountryIndicatorsJSONNotFound(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	out, err := loader.CountryIndicatorsJSON("ZZZ")
	if err != nil {
		t.Fatalf("CountryIndicatorsJSON: %v", err)
	}
	if out != `{"error":"Country not found: ZZZ"}` {
		t.Errorf("output = %s", out)
	}
}

func TestCountryIndicatorsJSONCaseSensitive(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	out, err := loader.CountryIndicatorsJSON("usa")
	if err != nil {
		t.Fatalf("CountryIndicatorsJSON: %v", err)
	}
	if out != `{"error":"Country not found: usa"}` {
		t.Errorf("lookup must not normalize case, got %s", out)
	}
}

func TestCountriesDeduplicated(t *testing.T) {
	csv := "countryiso3code,country\nUSA,United States\nUSA,United States\nBRA,Brazil\n"
	loader := NewLoader(writeCSV(t, csv))

	ds, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pairs := ds.Countries()
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Code != "BRA" || pairs[1].Code != "USA" {
		t.Errorf("pairs out of order: %v", pairs)
	}
}

func TestFilterByCountryEveryRowRoundTrips(t *testing.T) {
	loader := NewLoader(writeCSV(t, sampleCSV))

	ds, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	codeIdx := ds.ColumnIndex(ColumnCountryCode)
	for _, row := range ds.Rows {
		code := row[codeIdx].(string)
		matched := ds.FilterByCountry(code)
		found := false
		for _, m := range matched {
			same := true
			for i := range m {
				if m[i] != row[i] {
					same = false
					break
				}
			}
			if same {
				found = true
			}
			if m[codeIdx] != code {
				t.Errorf("matched row has code %v, want %s", m[codeIdx], code)
			}
		}
		if !found {
			t.Errorf("row with code %s missing from its own filter result", code)
		}
	}
}

package worldbank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
)

const usaGDPJSON = `[
	{"page": 1, "pages": 1, "per_page": 100, "total": 1},
	[{
		"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"},
		"country": {"id": "US", "value": "United States"},
		"countryiso3code": "USA",
		"date": "2022",
		"value": 25462700000000
	}]
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(base.NewClient(base.WithHTTPClient(server.Client())), WithBaseURL(server.URL))
}

func TestLiveIndicator(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/country/USA/indicator/NY.GDP.MKTP.CD" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" {
			t.Errorf("format = %q, want json", q.Get("format"))
		}
		if q.Get("per_page") != "100" {
			t.Errorf("per_page = %q, want 100", q.Get("per_page"))
		}
		if q.Get("date") != "2022" {
			t.Errorf("date = %q, want 2022", q.Get("date"))
		}
		_, _ = w.Write([]byte(usaGDPJSON))
	})

	result := client.LiveIndicator(context.Background(), "USA", "NY.GDP.MKTP.CD", 2022)

	if result.Error != "" {
		t.Fatalf("Error = %q", result.Error)
	}
	if result.Country != "USA" {
		t.Errorf("Country = %q", result.Country)
	}
	if result.CountryName == nil || *result.CountryName != "United States" {
		t.Errorf("CountryName = %v", result.CountryName)
	}
	if result.Indicator != "NY.GDP.MKTP.CD" {
		t.Errorf("Indicator = %q", result.Indicator)
	}
	if result.IndicatorName == nil || *result.IndicatorName != "GDP (current US$)" {
		t.Errorf("IndicatorName = %v", result.IndicatorName)
	}
	if result.Year != 2022 {
		t.Errorf("Year = %d", result.Year)
	}
	if string(result.Value) != "25462700000000" {
		t.Errorf("Value = %s", result.Value)
	}
}

func TestLiveIndicatorNoData(t *testing.T) {
	// The API returns the two-element envelope with a null data array when
	// nothing matches the query.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"page": 1, "pages": 0, "per_page": 100, "total": 0}, null]`))
	})

	result := client.LiveIndicator(context.Background(), "BRA", "SP.POP.TOTL", 2022)

	if result.Error != "No data available" {
		t.Errorf("Error = %q, want No data available", result.Error)
	}
	if result.Country != "BRA" {
		t.Errorf("Country = %q", result.Country)
	}
	if result.Indicator != "SP.POP.TOTL" {
		t.Errorf("Indicator = %q", result.Indicator)
	}
	if result.Year != 2022 {
		t.Errorf("Year = %d", result.Year)
	}
	if string(result.Value) != "null" {
		t.Errorf("Value = %s, want null", result.Value)
	}

	// Serialized form keeps the explicit null
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if string(decoded["value"]) != "null" {
		t.Errorf("value = %s, want null", decoded["value"])
	}
	if _, ok := decoded["country_name"]; ok {
		t.Error("country_name should be absent when no data was returned")
	}
}

func TestLiveIndicatorMetadataOnlyEnvelope(t *testing.T) {
	// Unknown indicators produce a one-element envelope carrying an API
	// error message instead of [metadata, data].
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"message": [{"id": "120", "value": "Invalid value"}]}]`))
	})

	result := client.LiveIndicator(context.Background(), "USA", "NOT.A.CODE", 2022)

	if result.Error != "No data available" {
		t.Errorf("Error = %q, want No data available", result.Error)
	}
	if string(result.Value) != "null" {
		t.Errorf("Value = %s, want null", result.Value)
	}
}

func TestLiveIndicatorInvalidRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	result := client.LiveIndicator(context.Background(), "ZZZ", "SP.POP.TOTL", 2022)

	want := "Invalid request for ZZZ / SP.POP.TOTL"
	if result.Error != want {
		t.Errorf("Error = %q, want %q", result.Error, want)
	}
	if result.Country != "" || result.Value != nil {
		t.Errorf("rejected request should carry only the error, got %+v", result)
	}

	// The payload reduces to a single error key
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Errorf("payload keys = %d, want just error: %s", len(decoded), data)
	}
}

func TestLiveIndicatorServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result := client.LiveIndicator(context.Background(), "USA", "SP.POP.TOTL", 2022)

	want := "Invalid request for USA / SP.POP.TOTL"
	if result.Error != want {
		t.Errorf("Error = %q, want %q", result.Error, want)
	}
}

func TestLiveIndicatorNullValuePassThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"page": 1, "pages": 1, "per_page": 100, "total": 1},
			[{
				"indicator": {"id": "SP.POP.TOTL", "value": "Population, total"},
				"country": {"id": "DE", "value": "Germany"},
				"countryiso3code": "DEU",
				"date": "2022",
				"value": null
			}]
		]`))
	})

	result := client.LiveIndicator(context.Background(), "DEU", "SP.POP.TOTL", 2022)

	if result.Error != "" {
		t.Fatalf("Error = %q", result.Error)
	}
	if string(result.Value) != "null" {
		t.Errorf("Value = %s, want null", result.Value)
	}
	if result.CountryName == nil || *result.CountryName != "Germany" {
		t.Errorf("CountryName = %v", result.CountryName)
	}
}

func TestLiveIndicatorMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	result := client.LiveIndicator(context.Background(), "USA", "SP.POP.TOTL", 2022)

	if result.Error == "" {
		t.Fatal("expected an error payload for a malformed response")
	}
}

func TestCompareCountries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/country/USA/indicator/SP.POP.TOTL":
			_, _ = w.Write([]byte(`[
				{"page": 1, "pages": 1, "per_page": 100, "total": 1},
				[{
					"indicator": {"id": "SP.POP.TOTL", "value": "Population, total"},
					"country": {"id": "US", "value": "United States"},
					"countryiso3code": "USA",
					"date": "2022",
					"value": 333287557
				}]
			]`))
		case "/country/ZZZ/indicator/SP.POP.TOTL":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	results := client.CompareCountries(context.Background(), []string{"USA", "ZZZ"}, "SP.POP.TOTL", 2022)

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Country != "USA" || string(results[0].Value) != "333287557" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Error != "Invalid request for ZZZ / SP.POP.TOTL" {
		t.Errorf("results[1].Error = %q", results[1].Error)
	}
}

func TestCompareCountriesEmptyInput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an empty country list")
	})

	results := client.CompareCountries(context.Background(), nil, "SP.POP.TOTL", 2022)

	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
	data, err := json.Marshal(results)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("serialized = %s, want []", data)
	}
}

func TestCompareCountriesPreservesOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"page": 1, "pages": 0, "per_page": 100, "total": 0}, null]`))
	})

	codes := []string{"NOR", "SWE", "DNK", "FIN"}
	results := client.CompareCountries(context.Background(), codes, "SP.POP.TOTL", 2022)

	if len(results) != len(codes) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(codes))
	}
	for i, code := range codes {
		if results[i].Country != code {
			t.Errorf("results[%d].Country = %q, want %q", i, results[i].Country, code)
		}
	}
}

func TestYearOmittedFromQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("date") {
			t.Errorf("date param should be absent, got %q", r.URL.Query().Get("date"))
		}
		_, _ = w.Write([]byte(`[{"page": 1, "pages": 0, "per_page": 100, "total": 0}, null]`))
	})

	client.LiveIndicator(context.Background(), "USA", "SP.POP.TOTL", 0)
}

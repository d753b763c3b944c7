// Package worldbank provides a client for the World Bank indicator API
// (api.worldbank.org/v2), used by the get_live_indicator and
// compare_countries tools.
package worldbank

import (
	"encoding/json"
	"strconv"
)

// apiEntry is one data point from the indicator time series. The value
// field stays raw: whatever the upstream sends (number, string, null) is
// passed through without coercion.
type apiEntry struct {
	Indicator apiRef          `json:"indicator"`
	Country   apiRef          `json:"country"`
	ISO3Code  string          `json:"countryiso3code"`
	Date      string          `json:"date"`
	Value     json.RawMessage `json:"value"`
}

// apiRef is the id/value pair the API uses for country and indicator names
type apiRef struct {
	ID    string  `json:"id"`
	Value *string `json:"value"`
}

// httpStatusError marks a non-2xx upstream response. It is mapped to the
// "Invalid request" payload rather than relayed as a raw message.
type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.status)
}

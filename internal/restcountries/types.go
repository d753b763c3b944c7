// Package restcountries provides a client for the REST Countries API
// (restcountries.com), used by the get_country_info tool.
package restcountries

import "encoding/json"

// CountryInfo is the reshaped country metadata returned to callers.
// Every field is independently optional: absent source fields serialize as
// explicit nulls rather than missing keys.
type CountryInfo struct {
	Name       *string  `json:"name"`
	Capital    *string  `json:"capital"`
	Region     *string  `json:"region"`
	Subregion  *string  `json:"subregion"`
	Languages  []string `json:"languages"`
	Currencies []string `json:"currencies"`
	Population *int64   `json:"population"`
	Flag       *string  `json:"flag"`
}

// apiCountry mirrors the subset of the upstream response we consume.
// Languages and currencies stay raw so their source order survives decoding
// (a Go map would shuffle it).
type apiCountry struct {
	Name struct {
		Common *string `json:"common"`
	} `json:"name"`
	Capital    []string        `json:"capital"`
	Region     *string         `json:"region"`
	Subregion  *string         `json:"subregion"`
	Languages  json.RawMessage `json:"languages"`
	Currencies json.RawMessage `json:"currencies"`
	Population *int64          `json:"population"`
	Flag       *string         `json:"flag"`
}

package restcountries

// GetCountryInfoArgs contains parameters for the get_country_info tool
type GetCountryInfoArgs struct {
	CountryCode string `json:"country_code" jsonschema:"required" jsonschema_description:"ISO 3166-1 alpha-3 country code (e.g. USA, BRA)"`
}

// CountryInfoResult is the get_country_info payload: either the reshaped
// country metadata or an error object with only the "error" key set.
type CountryInfoResult struct {
	*CountryInfo
	Error string `json:"error,omitempty"`
}
